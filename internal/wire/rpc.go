package wire

import (
	"context"
	"fmt"

	"google.golang.org/grpc"
	"google.golang.org/protobuf/encoding/protowire"
	"google.golang.org/protobuf/proto"

	"github.com/solatis/paramkeeper/internal/params"
)

/*
 * ParamStore RPC protocol.
 *
 * The service is described by a hand-maintained grpc.ServiceDesc: the
 * message layer is the set codec from this package, not generated
 * protobuf, so there is no codegen step in this repository. Messages
 * implement the Message interface and are moved through gRPC by Codec,
 * which falls back to proto marshaling for foreign messages (the
 * grpc-health service shares the server).
 */

// ServiceName is the fully qualified ParamStore service name.
const ServiceName = "paramkeeper.v1.ParamStore"

// Message is a wire-codec RPC message.
type Message interface {
	MarshalWire() ([]byte, error)
	UnmarshalWire(data []byte) error
}

// Codec moves Messages through gRPC; proto messages pass through
// untouched so shared services like grpc-health keep working.
type Codec struct{}

// Name identifies the codec for content-subtype negotiation.
func (Codec) Name() string { return "paramwire" }

func (Codec) Marshal(v any) ([]byte, error) {
	switch m := v.(type) {
	case Message:
		return m.MarshalWire()
	case proto.Message:
		return proto.Marshal(m)
	}
	return nil, fmt.Errorf("paramwire codec: unsupported message type %T", v)
}

func (Codec) Unmarshal(data []byte, v any) error {
	switch m := v.(type) {
	case Message:
		return m.UnmarshalWire(data)
	case proto.Message:
		return proto.Unmarshal(data, m)
	}
	return fmt.Errorf("paramwire codec: unsupported message type %T", v)
}

// GetSetRequest asks for a stored parameter set by name.
type GetSetRequest struct {
	Name string
}

// GetSetResponse carries the requested set.
type GetSetResponse struct {
	Name string
	Set  *params.Set
}

// PutSetRequest stores (or replaces) a named parameter set.
type PutSetRequest struct {
	Name string
	Set  *params.Set
}

// PutSetResponse reports the stored set's identifier.
type PutSetResponse struct {
	SetID string
}

// ListSetsRequest asks for all stored set names.
type ListSetsRequest struct{}

// ListSetsResponse carries the stored set names in sorted order.
type ListSetsResponse struct {
	Names []string
}

// Message field numbers. Frozen.
const (
	msgFieldName = 1 // bytes
	msgFieldSet  = 2 // bytes, MarshalSet encoding
)

// appendNamedSet encodes the (name, set) shape shared by several
// messages.
func appendNamedSet(name string, set *params.Set) ([]byte, error) {
	var buf []byte
	buf = protowire.AppendTag(buf, msgFieldName, protowire.BytesType)
	buf = protowire.AppendString(buf, name)
	if set != nil {
		enc, err := MarshalSet(set)
		if err != nil {
			return nil, err
		}
		buf = protowire.AppendTag(buf, msgFieldSet, protowire.BytesType)
		buf = protowire.AppendBytes(buf, enc)
	}
	return buf, nil
}

// consumeNamedSet decodes the (name, set) shape shared by several
// messages. An absent set field yields an empty set.
func consumeNamedSet(data []byte) (string, *params.Set, error) {
	var name string
	set := params.NewSet()

	b := data
	for len(b) > 0 {
		num, typ, n := protowire.ConsumeTag(b)
		if n < 0 {
			return "", nil, protowire.ParseError(n)
		}
		b = b[n:]

		switch {
		case num == msgFieldName && typ == protowire.BytesType:
			v, n := protowire.ConsumeString(b)
			if n < 0 {
				return "", nil, protowire.ParseError(n)
			}
			name = v
			b = b[n:]
		case num == msgFieldSet && typ == protowire.BytesType:
			enc, n := protowire.ConsumeBytes(b)
			if n < 0 {
				return "", nil, protowire.ParseError(n)
			}
			b = b[n:]
			s, err := UnmarshalSet(enc)
			if err != nil {
				return "", nil, err
			}
			set = s
		default:
			n = protowire.ConsumeFieldValue(num, typ, b)
			if n < 0 {
				return "", nil, protowire.ParseError(n)
			}
			b = b[n:]
		}
	}
	return name, set, nil
}

func (m *GetSetRequest) MarshalWire() ([]byte, error) {
	var buf []byte
	buf = protowire.AppendTag(buf, msgFieldName, protowire.BytesType)
	buf = protowire.AppendString(buf, m.Name)
	return buf, nil
}

func (m *GetSetRequest) UnmarshalWire(data []byte) error {
	name, _, err := consumeNamedSet(data)
	if err != nil {
		return err
	}
	m.Name = name
	return nil
}

func (m *GetSetResponse) MarshalWire() ([]byte, error) {
	return appendNamedSet(m.Name, m.Set)
}

func (m *GetSetResponse) UnmarshalWire(data []byte) error {
	name, set, err := consumeNamedSet(data)
	if err != nil {
		return err
	}
	m.Name, m.Set = name, set
	return nil
}

func (m *PutSetRequest) MarshalWire() ([]byte, error) {
	return appendNamedSet(m.Name, m.Set)
}

func (m *PutSetRequest) UnmarshalWire(data []byte) error {
	name, set, err := consumeNamedSet(data)
	if err != nil {
		return err
	}
	m.Name, m.Set = name, set
	return nil
}

func (m *PutSetResponse) MarshalWire() ([]byte, error) {
	var buf []byte
	buf = protowire.AppendTag(buf, msgFieldName, protowire.BytesType)
	buf = protowire.AppendString(buf, m.SetID)
	return buf, nil
}

func (m *PutSetResponse) UnmarshalWire(data []byte) error {
	id, _, err := consumeNamedSet(data)
	if err != nil {
		return err
	}
	m.SetID = id
	return nil
}

func (m *ListSetsRequest) MarshalWire() ([]byte, error) { return nil, nil }

func (m *ListSetsRequest) UnmarshalWire(data []byte) error { return nil }

func (m *ListSetsResponse) MarshalWire() ([]byte, error) {
	var buf []byte
	for _, name := range m.Names {
		buf = protowire.AppendTag(buf, msgFieldName, protowire.BytesType)
		buf = protowire.AppendString(buf, name)
	}
	return buf, nil
}

func (m *ListSetsResponse) UnmarshalWire(data []byte) error {
	m.Names = nil
	b := data
	for len(b) > 0 {
		num, typ, n := protowire.ConsumeTag(b)
		if n < 0 {
			return protowire.ParseError(n)
		}
		b = b[n:]

		if num == msgFieldName && typ == protowire.BytesType {
			v, n := protowire.ConsumeString(b)
			if n < 0 {
				return protowire.ParseError(n)
			}
			m.Names = append(m.Names, v)
			b = b[n:]
			continue
		}
		n = protowire.ConsumeFieldValue(num, typ, b)
		if n < 0 {
			return protowire.ParseError(n)
		}
		b = b[n:]
	}
	return nil
}

// ParamStoreServer is the server API for the ParamStore service.
type ParamStoreServer interface {
	GetSet(context.Context, *GetSetRequest) (*GetSetResponse, error)
	PutSet(context.Context, *PutSetRequest) (*PutSetResponse, error)
	ListSets(context.Context, *ListSetsRequest) (*ListSetsResponse, error)
}

// RegisterParamStoreServer registers srv on s. The server must be built
// with grpc.ForceServerCodec(Codec{}).
func RegisterParamStoreServer(s grpc.ServiceRegistrar, srv ParamStoreServer) {
	s.RegisterService(&ParamStoreServiceDesc, srv)
}

func getSetHandler(srv interface{}, ctx context.Context, dec func(interface{}) error, interceptor grpc.UnaryServerInterceptor) (interface{}, error) {
	in := new(GetSetRequest)
	if err := dec(in); err != nil {
		return nil, err
	}
	if interceptor == nil {
		return srv.(ParamStoreServer).GetSet(ctx, in)
	}
	info := &grpc.UnaryServerInfo{Server: srv, FullMethod: "/" + ServiceName + "/GetSet"}
	handler := func(ctx context.Context, req interface{}) (interface{}, error) {
		return srv.(ParamStoreServer).GetSet(ctx, req.(*GetSetRequest))
	}
	return interceptor(ctx, in, info, handler)
}

func putSetHandler(srv interface{}, ctx context.Context, dec func(interface{}) error, interceptor grpc.UnaryServerInterceptor) (interface{}, error) {
	in := new(PutSetRequest)
	if err := dec(in); err != nil {
		return nil, err
	}
	if interceptor == nil {
		return srv.(ParamStoreServer).PutSet(ctx, in)
	}
	info := &grpc.UnaryServerInfo{Server: srv, FullMethod: "/" + ServiceName + "/PutSet"}
	handler := func(ctx context.Context, req interface{}) (interface{}, error) {
		return srv.(ParamStoreServer).PutSet(ctx, req.(*PutSetRequest))
	}
	return interceptor(ctx, in, info, handler)
}

func listSetsHandler(srv interface{}, ctx context.Context, dec func(interface{}) error, interceptor grpc.UnaryServerInterceptor) (interface{}, error) {
	in := new(ListSetsRequest)
	if err := dec(in); err != nil {
		return nil, err
	}
	if interceptor == nil {
		return srv.(ParamStoreServer).ListSets(ctx, in)
	}
	info := &grpc.UnaryServerInfo{Server: srv, FullMethod: "/" + ServiceName + "/ListSets"}
	handler := func(ctx context.Context, req interface{}) (interface{}, error) {
		return srv.(ParamStoreServer).ListSets(ctx, req.(*ListSetsRequest))
	}
	return interceptor(ctx, in, info, handler)
}

// ParamStoreServiceDesc is the hand-maintained service descriptor.
var ParamStoreServiceDesc = grpc.ServiceDesc{
	ServiceName: ServiceName,
	HandlerType: (*ParamStoreServer)(nil),
	Methods: []grpc.MethodDesc{
		{MethodName: "GetSet", Handler: getSetHandler},
		{MethodName: "PutSet", Handler: putSetHandler},
		{MethodName: "ListSets", Handler: listSetsHandler},
	},
	Streams:  []grpc.StreamDesc{},
	Metadata: "paramkeeper/v1/paramstore",
}

// ParamStoreClient calls the ParamStore service over cc using the wire
// codec.
type ParamStoreClient struct {
	cc grpc.ClientConnInterface
}

// NewParamStoreClient wraps cc.
func NewParamStoreClient(cc grpc.ClientConnInterface) *ParamStoreClient {
	return &ParamStoreClient{cc: cc}
}

func (c *ParamStoreClient) GetSet(ctx context.Context, in *GetSetRequest) (*GetSetResponse, error) {
	out := new(GetSetResponse)
	if err := c.cc.Invoke(ctx, "/"+ServiceName+"/GetSet", in, out, grpc.ForceCodec(Codec{})); err != nil {
		return nil, err
	}
	return out, nil
}

func (c *ParamStoreClient) PutSet(ctx context.Context, in *PutSetRequest) (*PutSetResponse, error) {
	out := new(PutSetResponse)
	if err := c.cc.Invoke(ctx, "/"+ServiceName+"/PutSet", in, out, grpc.ForceCodec(Codec{})); err != nil {
		return nil, err
	}
	return out, nil
}

func (c *ParamStoreClient) ListSets(ctx context.Context, in *ListSetsRequest) (*ListSetsResponse, error) {
	out := new(ListSetsResponse)
	if err := c.cc.Invoke(ctx, "/"+ServiceName+"/ListSets", in, out, grpc.ForceCodec(Codec{})); err != nil {
		return nil, err
	}
	return out, nil
}
