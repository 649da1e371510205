package mcp

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"maps"
	"net/http"
	"time"

	"github.com/aretw0/bombrisk"
	"github.com/aretw0/bombrisk/internal/logging"
	"github.com/aretw0/bombrisk/pkg/domain"
	"github.com/aretw0/bombrisk/pkg/ports"
	"github.com/aretw0/bombrisk/pkg/session"
	"github.com/mark3labs/mcp-go/mcp"
	"github.com/mark3labs/mcp-go/server"
)

// WidgetResult is the structured payload returned by widget tools.
type WidgetResult struct {
	ID     string        `json:"id" jsonschema_description:"Widget id to pass to the other tools"`
	View   domain.View   `json:"view" jsonschema_description:"Declarative description of the box grid and controls"`
	Values domain.Values `json:"values" jsonschema_description:"Current values; outcome is present only after commit"`
}

// CommitResult pairs the commit status with the widget after the attempt.
type CommitResult struct {
	Status  domain.CommitStatus `json:"status" jsonschema_description:"committed, rejected or already_committed"`
	Warning string              `json:"warning,omitempty" jsonschema_description:"Prompt shown when the commit was rejected"`
	Widget  WidgetResult        `json:"widget"`
}

// ListResult carries a list of names.
type ListResult struct {
	Items []string `json:"items"`
}

type idArgs struct {
	ID string `json:"id"`
}

type createArgs struct {
	Treatment string         `json:"treatment"`
	Options   map[string]any `json:"options"`
}

type selectArgs struct {
	ID        string `json:"id"`
	Selection int    `json:"selection"`
}

type chooseArgs struct {
	ID     string        `json:"id"`
	Row    int           `json:"row"`
	Choice domain.Choice `json:"choice"`
}

type setValuesArgs struct {
	ID        string          `json:"id"`
	Selection *int            `json:"selection"`
	Choices   []domain.Choice `json:"choices"`
	Commit    bool            `json:"commit"`
}

type signalArgs struct {
	ID     string `json:"id"`
	Signal string `json:"signal"`
}

// Server exposes widgets held by a session.Manager as MCP tools.
type Server struct {
	manager    *session.Manager
	treatments ports.TreatmentLoader
	logger     *slog.Logger
	mcpServer  *server.MCPServer
	handlers   map[string]server.ToolHandlerFunc
}

// Option configures the Server.
type Option func(*Server)

// WithTreatments lets create_widget name a treatment preset.
func WithTreatments(loader ports.TreatmentLoader) Option {
	return func(s *Server) { s.treatments = loader }
}

// WithLogger configures a logger.
func WithLogger(logger *slog.Logger) Option {
	return func(s *Server) { s.logger = logger }
}

// NewServer creates a new MCP Server instance.
func NewServer(manager *session.Manager, opts ...Option) *Server {
	s := &Server{
		manager:   manager,
		logger:    logging.NewNop(),
		mcpServer: server.NewMCPServer("bombrisk-mcp", bombrisk.Version()),
		handlers:  make(map[string]server.ToolHandlerFunc),
	}
	for _, opt := range opts {
		opt(s)
	}
	s.registerTools()
	s.registerResources()
	return s
}

// MCPServer returns the underlying mcp-go server.
func (s *Server) MCPServer() *server.MCPServer { return s.mcpServer }

// ServeStdio starts the server on Stdin/Stdout.
func (s *Server) ServeStdio() error {
	return server.ServeStdio(s.mcpServer)
}

// ServeSSE serves the SSE transport on addr until ctx is done.
func (s *Server) ServeSSE(ctx context.Context, addr, baseURL string) error {
	sseServer := server.NewSSEServer(s.mcpServer, server.WithBaseURL(baseURL))

	mux := http.NewServeMux()
	mux.Handle("/sse", sseServer.SSEHandler())
	mux.Handle("/message", sseServer.MessageHandler())
	httpServer := &http.Server{Addr: addr, Handler: mux}

	serverErrors := make(chan error, 1)
	go func() {
		s.logger.Info("MCP server listening (SSE)", "address", addr)
		serverErrors <- httpServer.ListenAndServe()
	}()

	select {
	case err := <-serverErrors:
		if errors.Is(err, http.ErrServerClosed) {
			return nil
		}
		return err
	case <-ctx.Done():
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		if err := httpServer.Shutdown(shutdownCtx); err != nil {
			return fmt.Errorf("could not stop server gracefully: %w", err)
		}
		return nil
	}
}

func (s *Server) addTool(tool mcp.Tool, handler server.ToolHandlerFunc) {
	s.handlers[tool.Name] = handler
	s.mcpServer.AddTool(tool, handler)
}

func (s *Server) registerTools() {
	s.addTool(mcp.NewTool("list_methods",
		mcp.WithDescription("List the elicitation methods a widget can be created with."),
		mcp.WithOutputSchema[ListResult](),
	), mcp.NewStructuredToolHandler(s.handleListMethods))

	s.addTool(mcp.NewTool("create_widget",
		mcp.WithDescription("Create a bomb risk widget. Options follow the widget option names (method, boxCount, scale, currency, withPrize, mainText...)."),
		mcp.WithString("treatment", mcp.Description("Named option preset to start from (optional)")),
		mcp.WithObject("options", mcp.Description("Widget options overriding the treatment (optional)")),
		mcp.WithOutputSchema[WidgetResult](),
	), mcp.NewStructuredToolHandler(s.handleCreate))

	s.addTool(mcp.NewTool("get_widget",
		mcp.WithDescription("Describe a widget's current view and values."),
		mcp.WithString("id", mcp.Required(), mcp.Description("Widget id")),
		mcp.WithOutputSchema[WidgetResult](),
	), mcp.NewStructuredToolHandler(s.handleGet))

	s.addTool(mcp.NewTool("select_boxes",
		mcp.WithDescription("Move the selection control to the given number of boxes."),
		mcp.WithString("id", mcp.Required(), mcp.Description("Widget id")),
		mcp.WithNumber("selection", mcp.Required(), mcp.Description("Number of boxes to open")),
		mcp.WithOutputSchema[WidgetResult](),
	), mcp.NewStructuredToolHandler(s.handleSelect))

	s.addTool(mcp.NewTool("choose_row",
		mcp.WithDescription("Choose option A or B in one row of a choice-list widget."),
		mcp.WithString("id", mcp.Required(), mcp.Description("Widget id")),
		mcp.WithNumber("row", mcp.Required(), mcp.Description("1-based row index")),
		mcp.WithString("choice", mcp.Required(), mcp.Enum("A", "B")),
		mcp.WithOutputSchema[WidgetResult](),
	), mcp.NewStructuredToolHandler(s.handleChoose))

	s.addTool(mcp.NewTool("commit",
		mcp.WithDescription("Commit the selection. A selection of zero is rejected with a warning."),
		mcp.WithString("id", mcp.Required(), mcp.Description("Widget id")),
		mcp.WithOutputSchema[CommitResult](),
	), mcp.NewStructuredToolHandler(s.handleCommit))

	s.addTool(mcp.NewTool("get_values",
		mcp.WithDescription("Retrieve the task result."),
		mcp.WithString("id", mcp.Required(), mcp.Description("Widget id")),
		mcp.WithOutputSchema[domain.Values](),
	), mcp.NewStructuredToolHandler(s.handleGetValues))

	s.addTool(mcp.NewTool("set_values",
		mcp.WithDescription("Inject a simulated participant response. Without selection or choices a random one is drawn."),
		mcp.WithString("id", mcp.Required(), mcp.Description("Widget id")),
		mcp.WithNumber("selection", mcp.Description("Boxes to open, or the lottery switch row")),
		mcp.WithArray("choices", mcp.Description("Lottery choices per row"), mcp.WithStringEnumItems([]string{"A", "B"})),
		mcp.WithBoolean("commit", mcp.Description("Commit after setting")),
		mcp.WithOutputSchema[WidgetResult](),
	), mcp.NewStructuredToolHandler(s.handleSetValues))

	s.addTool(mcp.NewTool("send_signal",
		mcp.WithDescription("Deliver a lifecycle signal to the widget."),
		mcp.WithString("id", mcp.Required(), mcp.Description("Widget id")),
		mcp.WithString("signal", mcp.Required(),
			mcp.Enum(bombrisk.SignalEnabled, bombrisk.SignalDisabled, bombrisk.SignalHighlighted, bombrisk.SignalUnhighlighted)),
		mcp.WithOutputSchema[WidgetResult](),
	), mcp.NewStructuredToolHandler(s.handleSignal))

	s.addTool(mcp.NewTool("destroy_widget",
		mcp.WithDescription("Destroy a widget and forget it."),
		mcp.WithString("id", mcp.Required(), mcp.Description("Widget id")),
	), func(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
		id, err := request.RequireString("id")
		if err != nil {
			return mcp.NewToolResultError(err.Error()), nil
		}
		if err := s.manager.Delete(ctx, id); err != nil {
			return mcp.NewToolResultError(fmt.Sprintf("destroy failed: %v", err)), nil
		}
		return mcp.NewToolResultText("destroyed " + id), nil
	})
}

func (s *Server) handleListMethods(ctx context.Context, request mcp.CallToolRequest, args struct{}) (ListResult, error) {
	names, err := s.manager.Methods()
	if err != nil {
		return ListResult{}, err
	}
	return ListResult{Items: names}, nil
}

func (s *Server) handleCreate(ctx context.Context, request mcp.CallToolRequest, args createArgs) (WidgetResult, error) {
	options := map[string]any{}
	if args.Treatment != "" {
		if s.treatments == nil {
			return WidgetResult{}, fmt.Errorf("no treatment catalogue configured")
		}
		t, err := s.treatments.Get(ctx, args.Treatment)
		if err != nil {
			return WidgetResult{}, err
		}
		maps.Copy(options, t.Options)
	}
	maps.Copy(options, args.Options)

	id, w, err := s.manager.Create(ctx, options)
	if err != nil {
		return WidgetResult{}, err
	}
	return describe(id, w)
}

func (s *Server) handleGet(ctx context.Context, request mcp.CallToolRequest, args idArgs) (WidgetResult, error) {
	w, err := s.manager.Get(ctx, args.ID)
	if err != nil {
		return WidgetResult{}, err
	}
	return describe(args.ID, w)
}

func (s *Server) handleSelect(ctx context.Context, request mcp.CallToolRequest, args selectArgs) (WidgetResult, error) {
	return s.update(ctx, args.ID, func(w *bombrisk.Widget) error {
		return w.Select(args.Selection)
	})
}

func (s *Server) handleChoose(ctx context.Context, request mcp.CallToolRequest, args chooseArgs) (WidgetResult, error) {
	return s.update(ctx, args.ID, func(w *bombrisk.Widget) error {
		return w.Choose(args.Row, args.Choice)
	})
}

func (s *Server) handleCommit(ctx context.Context, request mcp.CallToolRequest, args idArgs) (CommitResult, error) {
	var res domain.CommitResult
	w, err := s.manager.Update(ctx, args.ID, func(w *bombrisk.Widget) error {
		var err error
		res, err = w.Commit()
		return err
	})
	if err != nil {
		return CommitResult{}, err
	}
	widget, err := describe(args.ID, w)
	if err != nil {
		return CommitResult{}, err
	}
	return CommitResult{Status: res.Status, Warning: res.Warning, Widget: widget}, nil
}

func (s *Server) handleGetValues(ctx context.Context, request mcp.CallToolRequest, args idArgs) (domain.Values, error) {
	w, err := s.manager.Get(ctx, args.ID)
	if err != nil {
		return domain.Values{}, err
	}
	return w.Values()
}

func (s *Server) handleSetValues(ctx context.Context, request mcp.CallToolRequest, args setValuesArgs) (WidgetResult, error) {
	resp := domain.Response{Selection: args.Selection, Choices: args.Choices, Commit: args.Commit}
	return s.update(ctx, args.ID, func(w *bombrisk.Widget) error {
		return w.SetValues(resp)
	})
}

func (s *Server) handleSignal(ctx context.Context, request mcp.CallToolRequest, args signalArgs) (WidgetResult, error) {
	if args.Signal == bombrisk.SignalDestroyed {
		return WidgetResult{}, fmt.Errorf("use destroy_widget to destroy a widget")
	}
	return s.update(ctx, args.ID, func(w *bombrisk.Widget) error {
		return w.Signal(args.Signal)
	})
}

func (s *Server) update(ctx context.Context, id string, fn func(*bombrisk.Widget) error) (WidgetResult, error) {
	w, err := s.manager.Update(ctx, id, fn)
	if err != nil {
		s.logger.Debug("tool call failed", "widget_id", id, "err", err)
		return WidgetResult{}, err
	}
	return describe(id, w)
}

func describe(id string, w *bombrisk.Widget) (WidgetResult, error) {
	view, err := w.View()
	if err != nil {
		return WidgetResult{}, err
	}
	values, err := w.Values()
	if err != nil {
		return WidgetResult{}, err
	}
	return WidgetResult{ID: id, View: view, Values: values}, nil
}
