package mazeapi

import (
	"bytes"
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/maeln/r-astar/api/identity"
	dmn "github.com/maeln/r-astar/domain"
	"github.com/maeln/r-astar/maze"
	"github.com/maeln/r-astar/render"
	"github.com/maeln/r-astar/service"
	"github.com/maeln/r-astar/service/i"
)

const svgContentType = "image/svg+xml"

// MazeController serves maze generation, solving, rendering and carve traces.
type MazeController struct {
	mazeBuilder i.MazeBuilder
	renderOpts  render.Options
}

// NewMazeController initializes a MazeController.
func NewMazeController(mb i.MazeBuilder, opts render.Options) (*MazeController, error) {
	if mb == nil {
		return nil, errors.New("maze controller requires a maze builder")
	}
	return &MazeController{
		mazeBuilder: mb,
		renderOpts:  opts,
	}, nil
}

// RegisterPublic registers public routes.
func (mc *MazeController) RegisterPublic(route *gin.RouterGroup) {}

// RegisterProtected registers protected routes.
func (mc *MazeController) RegisterProtected(route *gin.RouterGroup) {
	mazes := route.Group("/mazes")
	{
		mazes.POST("", mc.build)
		mazes.POST("/svg", mc.buildSVG)
		mazes.GET("/trace", mc.trace)
	}
}

// build carves and solves a maze and returns it as JSON.
func (mc *MazeController) build(ctx *gin.Context) {
	res, ok := mc.buildFromBody(ctx)
	if !ok {
		return
	}
	ctx.JSON(http.StatusOK, newMazeResponse(res))
}

// buildSVG carves and solves a maze and returns the drawing.
func (mc *MazeController) buildSVG(ctx *gin.Context) {
	res, ok := mc.buildFromBody(ctx)
	if !ok {
		return
	}

	var buf bytes.Buffer
	if err := render.SVG(&buf, res.Grid, res.Search.Path, mc.renderOpts); err != nil {
		ctx.JSON(http.StatusInternalServerError, gin.H{"error": "error while rendering maze"})
		return
	}
	ctx.Data(http.StatusOK, svgContentType, buf.Bytes())
}

// trace streams every carve step as a server-sent event, then the solved maze.
func (mc *MazeController) trace(ctx *gin.Context) {
	subject, ok := identity.UserID(ctx)
	if !ok {
		ctx.Status(http.StatusUnauthorized)
		return
	}

	var query TraceQuery
	if err := ctx.ShouldBindQuery(&query); err != nil {
		ctx.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	req := dmn.MazeRequest{Width: query.Width, Height: query.Height, Seed: query.Seed}
	reqCtx := ctx.Request.Context()
	res, err := mc.mazeBuilder.Trace(reqCtx, subject, req, func(step dmn.TraceStep) bool {
		ctx.SSEvent("carve", step)
		ctx.Writer.Flush()
		return reqCtx.Err() == nil
	})
	if err != nil {
		if ctx.Writer.Written() {
			ctx.SSEvent("error", gin.H{"error": err.Error()})
			return
		}
		writeError(ctx, err)
		return
	}

	ctx.SSEvent("done", newMazeResponse(res))
	ctx.Writer.Flush()
}

func (mc *MazeController) buildFromBody(ctx *gin.Context) (*dmn.MazeResult, bool) {
	subject, ok := identity.UserID(ctx)
	if !ok {
		ctx.Status(http.StatusUnauthorized)
		return nil, false
	}

	var request MazeRequest
	if err := ctx.ShouldBindJSON(&request); err != nil {
		ctx.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return nil, false
	}

	res, err := mc.mazeBuilder.Build(ctx.Request.Context(), subject, request.toDomain())
	if err != nil {
		writeError(ctx, err)
		return nil, false
	}
	return res, true
}

func writeError(ctx *gin.Context, err error) {
	switch {
	case errors.Is(err, maze.ErrInvalidDimension), errors.Is(err, maze.ErrOutOfBounds), errors.Is(err, service.ErrMazeTooLarge):
		ctx.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
	case errors.Is(err, service.ErrRateLimited):
		ctx.JSON(http.StatusTooManyRequests, gin.H{"error": err.Error()})
	default:
		ctx.JSON(http.StatusInternalServerError, gin.H{"error": "error while building maze"})
	}
}
