package workflow

import (
	"errors"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/ikkim/storefront/internal/app/service"
	"github.com/ikkim/storefront/internal/console"
	apperrors "github.com/ikkim/storefront/internal/errors"
	"github.com/ikkim/storefront/pkg/logger"
)

// Session is one logged-in user at the console. Workflows read and write
// through Port and log through Log, which carries the session id.
type Session struct {
	Port   *console.Port
	UserID uint
	Log    *logger.Logger
}

// NewSession starts a session for userID with a fresh session id.
func NewSession(port *console.Port, userID uint) *Session {
	return &Session{
		Port:   port,
		UserID: userID,
		Log: logger.WithContext(map[string]interface{}{
			"session_id": uuid.NewString(),
			"user_id":    userID,
		}),
	}
}

// anonymous is the session used before anyone has logged in.
func anonymous(port *console.Port) *Session {
	return &Session{
		Port: port,
		Log: logger.WithContext(map[string]interface{}{
			"session_id": uuid.NewString(),
		}),
	}
}

// run executes one workflow and reports how it ended. Rejections are printed as
// warnings, storage failures as a diagnostic; either way control goes back to the
// menu. Only a closed input stream is passed on.
func (s *Session) run(action string, fn func(*Session) error) error {
	start := time.Now()
	s.Log.Info("Workflow started", map[string]interface{}{
		"action": action,
	})

	err := fn(s)

	fields := map[string]interface{}{
		"action":     action,
		"latency_ms": time.Since(start).Milliseconds(),
	}
	switch {
	case err == nil:
		s.Log.Info("Workflow completed", fields)
	case errors.Is(err, console.ErrInputClosed):
		s.Log.Info("Input closed during workflow", fields)
		return err
	case service.IsValidationError(err):
		s.Log.Warn("Workflow rejected", withError(fields, err))
		s.Port.Warn(explain(err, action))
	default:
		info := apperrors.ParseError(err, action)
		fields["code"] = info.Code
		s.Log.Error("Workflow failed", err, fields)
		s.Port.Error(info.Message)
	}
	return nil
}

func withError(fields map[string]interface{}, err error) map[string]interface{} {
	fields["reason"] = err.Error()
	return fields
}

// explain turns an error into one console line. Service rejections read as a
// sentence; anything else goes through the storage error parser.
func explain(err error, action string) string {
	if !service.IsValidationError(err) {
		return apperrors.ParseError(err, action).Message
	}
	msg := strings.TrimPrefix(err.Error(), service.ErrInvalidInput.Error()+": ")
	if msg == "" {
		return msg
	}
	msg = strings.ToUpper(msg[:1]) + msg[1:]
	if !strings.HasSuffix(msg, ".") {
		msg += "."
	}
	return msg
}
