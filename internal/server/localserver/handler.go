package localserver

import (
	"errors"
	"fmt"
	"strings"

	"github.com/yndnr/microdog-go/internal/core/domain"
	"github.com/yndnr/microdog-go/internal/core/service"
)

// Reply lines.
const (
	ReplyPong = "PONG"
	ReplyMiss = "MISS"
	ReplyBye  = "BYE"
)

// Handler executes protocol commands against a resolver.
type Handler struct {
	resolver *service.Resolver
}

// NewHandler creates a Handler.
func NewHandler(resolver *service.Resolver) *Handler {
	return &Handler{resolver: resolver}
}

// Execute runs one command line and returns the reply line without its
// terminator. quit is set when the client asked to close the connection.
func (h *Handler) Execute(line string) (reply string, quit bool) {
	fields := strings.Fields(line)
	if len(fields) == 0 {
		return errorReply(domain.ErrInvalidArgument.WithDetails("empty command")), false
	}

	cmd, args := strings.ToUpper(fields[0]), fields[1:]
	switch cmd {
	case "PING":
		return ReplyPong, false
	case "RESOLVE":
		return h.handleResolve(args), false
	case "INFO":
		return h.handleInfo(), false
	case "QUIT":
		return ReplyBye, true
	default:
		return errorReply(domain.ErrInvalidArgument.WithDetails("unknown command")), false
	}
}

func (h *Handler) handleResolve(args []string) string {
	if len(args) != 1 {
		return errorReply(domain.ErrInvalidArgument.WithDetails("RESOLVE takes one hex argument"))
	}

	response, err := h.resolver.ResolveHex(args[0])
	switch {
	case err == nil:
		return fmt.Sprintf("OK %08X", response)
	case errors.Is(err, domain.ErrRequestNotFound):
		return ReplyMiss
	default:
		return errorReply(err)
	}
}

func (h *Handler) handleInfo() string {
	rec := h.resolver.Record()
	return fmt.Sprintf("OK serial=%04X algorithm=%s entries=%d",
		rec.Serial(), rec.Algorithm(), rec.Len())
}

// errorReply renders err as "ERR <code> <message>".
func errorReply(err error) string {
	var de *domain.DomainError
	if !errors.As(err, &de) {
		de = domain.ErrInternal
	}
	msg := de.Message
	if de.Details != "" {
		msg = de.Details
	}
	return "ERR " + de.Code + " " + msg
}
