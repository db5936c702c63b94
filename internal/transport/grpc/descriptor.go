package grpc_server

import (
	"errors"
	"sync"

	"google.golang.org/protobuf/proto"
	"google.golang.org/protobuf/reflect/protodesc"
	"google.golang.org/protobuf/reflect/protoregistry"
	"google.golang.org/protobuf/types/descriptorpb"
	_ "google.golang.org/protobuf/types/known/structpb"
)

const protoFile = "learnpak/v1/learning.proto"

var registerOnce sync.Once

// registerFileDescriptor builds the descriptor for LearningService from serviceDesc and
// adds it to the global registry, where server reflection looks symbols up. Every
// method takes and returns google.protobuf.Struct.
func registerFileDescriptor() error {
	var err error
	registerOnce.Do(func() {
		if _, findErr := protoregistry.GlobalFiles.FindFileByPath(protoFile); findErr == nil {
			return
		} else if !errors.Is(findErr, protoregistry.NotFound) {
			err = findErr
			return
		}

		methods := make([]*descriptorpb.MethodDescriptorProto, 0, len(serviceDesc.Methods))
		for _, m := range serviceDesc.Methods {
			methods = append(methods, &descriptorpb.MethodDescriptorProto{
				Name:       proto.String(m.MethodName),
				InputType:  proto.String(".google.protobuf.Struct"),
				OutputType: proto.String(".google.protobuf.Struct"),
			})
		}
		fdp := &descriptorpb.FileDescriptorProto{
			Name:       proto.String(protoFile),
			Package:    proto.String("learnpak.v1"),
			Dependency: []string{"google/protobuf/struct.proto"},
			Service: []*descriptorpb.ServiceDescriptorProto{{
				Name:   proto.String("LearningService"),
				Method: methods,
			}},
			Syntax: proto.String("proto3"),
		}

		fd, buildErr := protodesc.NewFile(fdp, protoregistry.GlobalFiles)
		if buildErr != nil {
			err = buildErr
			return
		}
		err = protoregistry.GlobalFiles.RegisterFile(fd)
	})
	return err
}
