package grpc_server

import (
	"context"
	"log"

	"google.golang.org/grpc"
	"google.golang.org/grpc/health"
	healthpb "google.golang.org/grpc/health/grpc_health_v1"
	"google.golang.org/grpc/reflection"
	"google.golang.org/protobuf/types/known/structpb"

	"github.com/OWAISARSHED/LearnPak/internal/middleware"
)

// LearningService is the server contract registered under ServiceName.
type LearningService interface {
	Enroll(context.Context, *structpb.Struct) (*structpb.Struct, error)
	ListEnrollments(context.Context, *structpb.Struct) (*structpb.Struct, error)
	CompleteLesson(context.Context, *structpb.Struct) (*structpb.Struct, error)
	RequestPayout(context.Context, *structpb.Struct) (*structpb.Struct, error)
	ResolvePayout(context.Context, *structpb.Struct) (*structpb.Struct, error)
	ListCourses(context.Context, *structpb.Struct) (*structpb.Struct, error)
}

type unaryMethod func(LearningService, context.Context, *structpb.Struct) (*structpb.Struct, error)

func methodHandler(name string, call unaryMethod) grpc.MethodDesc {
	return grpc.MethodDesc{
		MethodName: name,
		Handler: func(srv any, ctx context.Context, dec func(any) error, interceptor grpc.UnaryServerInterceptor) (any, error) {
			in := new(structpb.Struct)
			if err := dec(in); err != nil {
				return nil, err
			}
			if interceptor == nil {
				return call(srv.(LearningService), ctx, in)
			}
			info := &grpc.UnaryServerInfo{Server: srv, FullMethod: "/" + ServiceName + "/" + name}
			return interceptor(ctx, in, info, func(ctx context.Context, req any) (any, error) {
				return call(srv.(LearningService), ctx, req.(*structpb.Struct))
			})
		},
	}
}

var serviceDesc = grpc.ServiceDesc{
	ServiceName: ServiceName,
	HandlerType: (*LearningService)(nil),
	Methods: []grpc.MethodDesc{
		methodHandler("Enroll", LearningService.Enroll),
		methodHandler("ListEnrollments", LearningService.ListEnrollments),
		methodHandler("CompleteLesson", LearningService.CompleteLesson),
		methodHandler("RequestPayout", LearningService.RequestPayout),
		methodHandler("ResolvePayout", LearningService.ResolvePayout),
		methodHandler("ListCourses", LearningService.ListCourses),
	},
	Metadata: protoFile,
}

func RegisterLearningServiceServer(s grpc.ServiceRegistrar, srv LearningService) {
	s.RegisterService(&serviceDesc, srv)
}

// LearningClient calls LearningService methods by name.
type LearningClient struct {
	cc grpc.ClientConnInterface
}

func NewLearningClient(cc grpc.ClientConnInterface) *LearningClient {
	return &LearningClient{cc: cc}
}

func (c *LearningClient) Call(ctx context.Context, method string, in *structpb.Struct, opts ...grpc.CallOption) (*structpb.Struct, error) {
	if in == nil {
		in = &structpb.Struct{}
	}
	out := new(structpb.Struct)
	if err := c.cc.Invoke(ctx, "/"+ServiceName+"/"+method, in, out, opts...); err != nil {
		return nil, err
	}
	return out, nil
}

// NewServer builds a grpc.Server with the auth interceptor, LearningService, the
// health service and reflection registered.
func NewServer(auth middleware.Authenticator, srv LearningService) (*grpc.Server, *health.Server) {
	s := grpc.NewServer(grpc.UnaryInterceptor(AuthInterceptor(auth)))
	RegisterLearningServiceServer(s, srv)

	hs := health.NewServer()
	hs.SetServingStatus(ServiceName, healthpb.HealthCheckResponse_SERVING)
	healthpb.RegisterHealthServer(s, hs)
	if err := registerFileDescriptor(); err != nil {
		log.Printf("grpc reflection descriptor: %v", err)
	}
	reflection.Register(s)
	return s, hs
}
