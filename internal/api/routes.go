package api

import (
	"net/http"

	"github.com/zeromicro/go-zero/rest"

	"livslogg/internal/svc"
)

// RegisterHandlers wires the dashboard routes onto the rest server.
func RegisterHandlers(server *rest.Server, ctx *svc.ServiceContext) {
	server.AddRoutes([]rest.Route{
		{
			Method:  http.MethodGet,
			Path:    "/api/totals",
			Handler: TotalsHandler(ctx),
		},
		{
			Method:  http.MethodGet,
			Path:    "/api/today",
			Handler: TodayHandler(ctx),
		},
		{
			Method:  http.MethodGet,
			Path:    "/api/summary",
			Handler: SummaryHandler(ctx),
		},
		{
			Method:  http.MethodGet,
			Path:    "/api/timeline",
			Handler: TimelineHandler(ctx),
		},
	})
}
