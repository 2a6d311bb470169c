package router

import (
	"net/http"

	"github.com/federation-of-frogs/backend/pkg/errorx"
	"github.com/federation-of-frogs/backend/pkg/xcontext"
	"github.com/gin-gonic/gin"
)

func wrapHandler[Request, Response any](
	router *Router,
	method string,
	handler HandlerFunc[Request, Response],
) gin.HandlerFunc {
	return func(gctx *gin.Context) {
		ctx := xcontext.WithDB(gctx.Request.Context(), router.db)
		ctx = xcontext.WithConfigs(ctx, router.cfg)
		ctx = xcontext.WithLogger(ctx, router.log)
		ctx = xcontext.WithHTTPRequest(ctx, gctx.Request)

		for _, middleware := range router.befores {
			if err := middleware(ctx); err != nil {
				writeError(gctx, router, method, err)
				return
			}
		}

		var req Request
		var err error
		switch method {
		case http.MethodGet:
			err = gctx.ShouldBindQuery(&req)
		case http.MethodPost:
			if gctx.Request.ContentLength > 0 {
				err = gctx.ShouldBindJSON(&req)
			}
		}
		if err != nil {
			writeError(gctx, router, method, errorx.New(errorx.BadRequest, "Cannot bind the request"))
			return
		}

		resp, err := handler(ctx, &req)
		if err != nil {
			writeError(gctx, router, method, err)
			return
		}

		gctx.JSON(http.StatusOK, newResponse(resp))
	}
}

func writeError(gctx *gin.Context, router *Router, method string, err error) {
	router.log.Warnf("%s | %s | %v", method, gctx.Request.URL.Path, err)
	gctx.AbortWithStatusJSON(statusOf(err), newErrorResponse(err))
}
