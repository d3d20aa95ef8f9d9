package supervisor

import (
	"context"
	"log"
	"net"

	"github.com/zllovesuki/OverlayManager/rpc/server"

	"github.com/improbable-eng/grpc-web/go/grpcweb"
	"github.com/pkg/errors"
	"github.com/thejerf/suture/v4"
	"google.golang.org/grpc"
)

// DefaultGRPCAddress is where the gRPC server listens when no address is configured
const DefaultGRPCAddress = "127.0.0.1:9969"

type servers struct {
	Overlay *server.OverlayServer
	Remote  *server.RemoteServer
}

type Server struct {
	server  *grpc.Server
	servers servers
	address string
	grpcWeb *grpcweb.WrappedGrpcServer
}

func (s *Server) GetWebHandler() *grpcweb.WrappedGrpcServer {
	return s.grpcWeb
}

type GRPCRunConfig struct {
	Address string
	Version string

	Overlay server.Overlay
	Tuner   server.Tuner
	Keys    server.KeyPresser
}

func NewGRPCServer(conf GRPCRunConfig) (*Server, error) {
	if conf.Overlay == nil {
		return nil, errors.New("nil overlay is invalid")
	}
	if conf.Keys == nil {
		return nil, errors.New("nil key presser is invalid")
	}
	if conf.Address == "" {
		conf.Address = DefaultGRPCAddress
	}

	s := grpc.NewServer()

	overlayServer, err := server.RegisterOverlayServer(s, conf.Overlay, conf.Tuner, conf.Version)
	if err != nil {
		return nil, err
	}
	remoteServer, err := server.RegisterRemoteServer(s, conf.Keys)
	if err != nil {
		return nil, err
	}

	return &Server{
		server: s,
		servers: servers{
			Overlay: overlayServer,
			Remote:  remoteServer,
		},
		address: conf.Address,
		grpcWeb: grpcweb.WrapServer(s),
	}, nil
}

func (s *Server) Serve(haltCtx context.Context) error {
	lis, err := net.Listen("tcp", s.address)
	if err != nil {
		log.Printf("[gRPCServer] Failed to listen for connections: %+v\n", err)
		return errors.Wrap(suture.ErrTerminateSupervisorTree, "[gRPCServer] failed to listen for connections") // If we cannot start gRPC Server, kill the entire tree
	}
	return s.serve(haltCtx, lis)
}

func (s *Server) serve(haltCtx context.Context, lis net.Listener) error {
	stopped := make(chan struct{})
	go func() {
		defer close(stopped)
		<-haltCtx.Done()
		log.Printf("[gRPCServer] stopping grpc server\n")
		s.server.GracefulStop()
		log.Printf("[gRPCServer] server stopped\n")
	}()
	log.Printf("[gRPCServer] grpc server available at %s\n", lis.Addr())

	err := s.server.Serve(lis)
	if haltCtx.Err() != nil {
		<-stopped
		return nil
	}
	return err
}

func (s *Server) String() string {
	return "gRPCServer"
}
