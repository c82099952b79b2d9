package api

import (
	"context"
	"path/filepath"
	"testing"

	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/status"

	"github.com/solatis/paramkeeper/internal/core/config"
	"github.com/solatis/paramkeeper/internal/core/db"
	"github.com/solatis/paramkeeper/internal/core/store"
	"github.com/solatis/paramkeeper/internal/params"
	"github.com/solatis/paramkeeper/internal/wire"
)

func newTestService(t *testing.T) *ParamStoreService {
	t.Helper()

	dbPath := filepath.Join(t.TempDir(), "api_test.db")
	conn, err := db.Open("sqlite://" + dbPath)
	if err != nil {
		t.Fatalf("failed to open database: %v", err)
	}
	t.Cleanup(func() { conn.Close() })

	if err := db.MigrateUp(conn); err != nil {
		t.Fatalf("failed to run migrations: %v", err)
	}
	queries, err := db.LoadQueries(conn)
	if err != nil {
		t.Fatalf("failed to load queries: %v", err)
	}

	svc, err := NewParamStoreService(store.New(queries), config.DefaultServiceConfig())
	if err != nil {
		t.Fatalf("failed to create service: %v", err)
	}
	return svc
}

func TestPutGetRoundTrip(t *testing.T) {
	svc := newTestService(t)
	ctx := context.Background()

	set := params.NewSet()
	if err := set.AddInt("vcpus", 4); err != nil {
		t.Fatal(err)
	}
	if err := set.AddString("machine", "q35"); err != nil {
		t.Fatal(err)
	}

	put, err := svc.PutSet(ctx, &wire.PutSetRequest{Name: "guest-config", Set: set})
	if err != nil {
		t.Fatalf("PutSet failed: %v", err)
	}
	if put.SetID == "" {
		t.Error("PutSet returned empty set id")
	}

	got, err := svc.GetSet(ctx, &wire.GetSetRequest{Name: "guest-config"})
	if err != nil {
		t.Fatalf("GetSet failed: %v", err)
	}
	if got.Name != "guest-config" {
		t.Errorf("expected name guest-config, got %q", got.Name)
	}

	vcpus, found, err := got.Set.Int("vcpus")
	if err != nil || !found || vcpus != 4 {
		t.Errorf("vcpus = (%d, %v, %v), want (4, true, nil)", vcpus, found, err)
	}
	machine, found, err := got.Set.String("machine")
	if err != nil || !found || machine != "q35" {
		t.Errorf("machine = (%q, %v, %v), want (\"q35\", true, nil)", machine, found, err)
	}
}

func TestGetMissingSet(t *testing.T) {
	svc := newTestService(t)

	_, err := svc.GetSet(context.Background(), &wire.GetSetRequest{Name: "missing"})
	if status.Code(err) != codes.NotFound {
		t.Errorf("expected NotFound, got %v", err)
	}
}

func TestPutEmptyName(t *testing.T) {
	svc := newTestService(t)

	_, err := svc.PutSet(context.Background(), &wire.PutSetRequest{Name: "", Set: params.NewSet()})
	if status.Code(err) != codes.InvalidArgument {
		t.Errorf("expected InvalidArgument, got %v", err)
	}
}

func TestPutOversizedSet(t *testing.T) {
	svc := newTestService(t)
	svc.cfg.MaxSetParams = 2

	set := params.NewSet()
	for _, name := range []string{"a", "b", "c"} {
		if err := set.AddInt(name, 1); err != nil {
			t.Fatal(err)
		}
	}

	_, err := svc.PutSet(context.Background(), &wire.PutSetRequest{Name: "big", Set: set})
	if status.Code(err) != codes.InvalidArgument {
		t.Errorf("expected InvalidArgument, got %v", err)
	}
}

func TestListSets(t *testing.T) {
	svc := newTestService(t)
	ctx := context.Background()

	resp, err := svc.ListSets(ctx, &wire.ListSetsRequest{})
	if err != nil {
		t.Fatalf("ListSets failed: %v", err)
	}
	if len(resp.Names) != 0 {
		t.Fatalf("expected no sets, got %d", len(resp.Names))
	}

	for _, name := range []string{"beta", "alpha"} {
		set := params.NewSet()
		if err := set.AddBoolean("enabled", true); err != nil {
			t.Fatal(err)
		}
		if _, err := svc.PutSet(ctx, &wire.PutSetRequest{Name: name, Set: set}); err != nil {
			t.Fatalf("PutSet(%q) failed: %v", name, err)
		}
	}

	resp, err = svc.ListSets(ctx, &wire.ListSetsRequest{})
	if err != nil {
		t.Fatalf("ListSets failed: %v", err)
	}
	if len(resp.Names) != 2 || resp.Names[0] != "alpha" || resp.Names[1] != "beta" {
		t.Errorf("expected [alpha beta], got %v", resp.Names)
	}
}

func TestNewServiceNilArgs(t *testing.T) {
	if _, err := NewParamStoreService(nil, config.DefaultServiceConfig()); err == nil {
		t.Error("expected error for nil store")
	}
	if _, err := NewParamStoreService(&store.Store{}, nil); err == nil {
		t.Error("expected error for nil config")
	}
}
