package grpc_server

import (
	"context"
	"encoding/json"
	"errors"
	"log"
	"strings"

	"github.com/google/uuid"
	"google.golang.org/grpc"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/metadata"
	"google.golang.org/grpc/status"
	"google.golang.org/protobuf/types/known/structpb"

	"github.com/OWAISARSHED/LearnPak/internal/access"
	"github.com/OWAISARSHED/LearnPak/internal/application/usecase"
	"github.com/OWAISARSHED/LearnPak/internal/domain"
	"github.com/OWAISARSHED/LearnPak/internal/middleware"
)

const ServiceName = "learnpak.v1.LearningService"

// LearningServer exposes the enrollment and payout core over gRPC. Requests and
// responses are google.protobuf.Struct carrying the same JSON shapes as the HTTP API.
type LearningServer struct {
	enrollments *usecase.EnrollmentUseCase
	payouts     *usecase.PayoutUseCase
	courses     *usecase.CourseUseCase
}

func NewLearningServer(e *usecase.EnrollmentUseCase, p *usecase.PayoutUseCase, c *usecase.CourseUseCase) *LearningServer {
	return &LearningServer{enrollments: e, payouts: p, courses: c}
}

func (s *LearningServer) Enroll(ctx context.Context, req *structpb.Struct) (*structpb.Struct, error) {
	courseID, err := uuidField(req, "courseId")
	if err != nil {
		return nil, toStatus(err)
	}
	e, err := s.enrollments.Enroll(ctx, principalFrom(ctx), courseID)
	return reply(e, err)
}

func (s *LearningServer) ListEnrollments(ctx context.Context, _ *structpb.Struct) (*structpb.Struct, error) {
	list, err := s.enrollments.MyEnrollments(ctx, principalFrom(ctx))
	return replyItems(list, err)
}

func (s *LearningServer) CompleteLesson(ctx context.Context, req *structpb.Struct) (*structpb.Struct, error) {
	id, err := uuidField(req, "enrollmentId")
	if err != nil {
		return nil, toStatus(err)
	}
	e, err := s.enrollments.MarkLessonComplete(ctx, principalFrom(ctx), id, stringField(req, "lessonId"))
	return reply(e, err)
}

func (s *LearningServer) RequestPayout(ctx context.Context, req *structpb.Struct) (*structpb.Struct, error) {
	amount := req.GetFields()["amount"].GetNumberValue()
	p, err := s.payouts.Request(ctx, principalFrom(ctx), amount)
	return reply(p, err)
}

func (s *LearningServer) ResolvePayout(ctx context.Context, req *structpb.Struct) (*structpb.Struct, error) {
	id, err := uuidField(req, "payoutId")
	if err != nil {
		return nil, toStatus(err)
	}
	st := domain.PayoutStatus(stringField(req, "status"))
	p, err := s.payouts.Resolve(ctx, principalFrom(ctx), id, st)
	return reply(p, err)
}

func (s *LearningServer) ListCourses(ctx context.Context, req *structpb.Struct) (*structpb.Struct, error) {
	list, err := s.courses.List(ctx, principalFrom(ctx), access.CourseQuery{
		Keyword:    stringField(req, "keyword"),
		Language:   stringField(req, "language"),
		Instructor: stringField(req, "instructor"),
		Status:     stringField(req, "status"),
	})
	return replyItems(list, err)
}

type principalKey struct{}

func principalFrom(ctx context.Context) *domain.Principal {
	p, _ := ctx.Value(principalKey{}).(*domain.Principal)
	return p
}

// AuthInterceptor resolves a bearer token from the authorization metadata. Calls
// without one run anonymously; a token that does not validate is rejected.
func AuthInterceptor(auth middleware.Authenticator) grpc.UnaryServerInterceptor {
	return func(ctx context.Context, req any, info *grpc.UnaryServerInfo, handler grpc.UnaryHandler) (any, error) {
		md, _ := metadata.FromIncomingContext(ctx)
		values := md.Get("authorization")
		if len(values) == 0 {
			return handler(ctx, req)
		}

		token, ok := strings.CutPrefix(values[0], "Bearer ")
		if !ok || token == "" {
			return nil, status.Error(codes.Unauthenticated, "invalid authorization metadata")
		}
		p, err := auth.Authenticate(ctx, token)
		if err != nil {
			return nil, status.Error(codes.Unauthenticated, "invalid or expired token")
		}
		return handler(context.WithValue(ctx, principalKey{}, p), req)
	}
}

func toStatus(err error) error {
	var code codes.Code
	switch {
	case errors.Is(err, domain.ErrNotFound):
		code = codes.NotFound
	case errors.Is(err, domain.ErrForbidden):
		code = codes.PermissionDenied
	case errors.Is(err, domain.ErrConflict):
		code = codes.AlreadyExists
	case errors.Is(err, domain.ErrCapacityExceeded):
		code = codes.ResourceExhausted
	case errors.Is(err, domain.ErrInvalidInput):
		code = codes.InvalidArgument
	case errors.Is(err, domain.ErrUnauthorized):
		code = codes.Unauthenticated
	default:
		log.Printf("grpc: %v", err)
		return status.Error(codes.Internal, "internal error")
	}
	return status.Error(code, err.Error())
}

func reply(v any, err error) (*structpb.Struct, error) {
	if err != nil {
		return nil, toStatus(err)
	}
	return toStruct(v)
}

func replyItems[T any](items []T, err error) (*structpb.Struct, error) {
	if err != nil {
		return nil, toStatus(err)
	}
	if items == nil {
		items = []T{}
	}
	return toStruct(map[string]any{"items": items})
}

// toStruct goes through encoding/json so the field names match the HTTP responses.
func toStruct(v any) (*structpb.Struct, error) {
	data, err := json.Marshal(v)
	if err != nil {
		return nil, status.Error(codes.Internal, err.Error())
	}
	var m map[string]any
	if err := json.Unmarshal(data, &m); err != nil {
		return nil, status.Error(codes.Internal, err.Error())
	}
	out, err := structpb.NewStruct(m)
	if err != nil {
		return nil, status.Error(codes.Internal, err.Error())
	}
	return out, nil
}

func stringField(req *structpb.Struct, name string) string {
	return req.GetFields()[name].GetStringValue()
}

func uuidField(req *structpb.Struct, name string) (uuid.UUID, error) {
	id, err := uuid.Parse(stringField(req, name))
	if err != nil {
		return uuid.Nil, domain.Invalid(name + " must be a uuid")
	}
	return id, nil
}
