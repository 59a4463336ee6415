package v1alpha1

import (
	"context"

	"google.golang.org/grpc"
)

// Service names as they appear in method paths and health checks
const (
	CatalogServiceName       = "weapondeck.v1alpha1.CatalogService"
	DeckServiceName          = "weapondeck.v1alpha1.DeckService"
	InventoryServiceName     = "weapondeck.v1alpha1.InventoryService"
	CustomizationServiceName = "weapondeck.v1alpha1.CustomizationService"
)

// ServiceNames lists every service Register installs
func ServiceNames() []string {
	return []string{
		CatalogServiceName,
		DeckServiceName,
		InventoryServiceName,
		CustomizationServiceName,
	}
}

// server is the handler type every service description accepts
type server interface {
	weaponDeck()
}

// Register installs all four services on the grpc server
func (h *Handler) Register(r grpc.ServiceRegistrar) {
	for _, desc := range []*grpc.ServiceDesc{
		catalogServiceDesc,
		deckServiceDesc,
		inventoryServiceDesc,
		customizationServiceDesc,
	} {
		r.RegisterService(desc, h)
	}
}

func serviceDesc(name string, methods ...grpc.MethodDesc) *grpc.ServiceDesc {
	return &grpc.ServiceDesc{
		ServiceName: name,
		HandlerType: (*server)(nil),
		Methods:     methods,
		Streams:     []grpc.StreamDesc{},
		Metadata:    "weapondeck/v1alpha1",
	}
}

// unary adapts a handler method to a grpc method description, running the
// server's interceptor chain around it
func unary[Req, Resp any](
	service, method string,
	call func(*Handler, context.Context, *Req) (*Resp, error),
) grpc.MethodDesc {
	fullMethod := "/" + service + "/" + method
	return grpc.MethodDesc{
		MethodName: method,
		Handler: func(
			srv any,
			ctx context.Context,
			dec func(any) error,
			interceptor grpc.UnaryServerInterceptor,
		) (any, error) {
			req := new(Req)
			if err := dec(req); err != nil {
				return nil, err
			}
			h := srv.(*Handler)
			if interceptor == nil {
				return call(h, ctx, req)
			}
			info := &grpc.UnaryServerInfo{Server: srv, FullMethod: fullMethod}
			return interceptor(ctx, req, info, func(ctx context.Context, r any) (any, error) {
				return call(h, ctx, r.(*Req))
			})
		},
	}
}
