package coursecmd

import (
	"context"

	validation "github.com/go-ozzo/ozzo-validation/v4"
	"github.com/baitalhikma/go-courses/internal/commands"
	"github.com/baitalhikma/go-courses/lifecycle"
	"github.com/baitalhikma/go-courses/pkg/interfaces"
	"github.com/google/uuid"
)

const cancelMessageType = "courses.lifecycle.cancel"

// CancelCourseRequestCommand withdraws the outstanding pending request and
// restores the course to draft.
type CancelCourseRequestCommand struct {
	CourseID uuid.UUID `json:"course_id"`
	ActorID  uuid.UUID `json:"actor_id,omitempty"`
}

// Type implements command.Message.
func (CancelCourseRequestCommand) Type() string { return cancelMessageType }

// Validate ensures the message carries the required fields before reaching handlers.
func (m CancelCourseRequestCommand) Validate() error {
	errs := validation.Errors{}
	if m.CourseID == uuid.Nil {
		errs["course_id"] = validation.NewError("courses.lifecycle.cancel.course_id_required", "course_id is required")
	}
	if len(errs) > 0 {
		return errs
	}
	return nil
}

// CancelCourseRequestHandler routes cancellations through the lifecycle service.
type CancelCourseRequestHandler struct {
	inner *commands.Handler[CancelCourseRequestCommand]
}

// NewCancelCourseRequestHandler constructs a handler wired to the lifecycle service.
func NewCancelCourseRequestHandler(service lifecycle.Service, logger interfaces.Logger, opts ...commands.HandlerOption[CancelCourseRequestCommand]) *CancelCourseRequestHandler {
	exec := func(ctx context.Context, msg CancelCourseRequestCommand) error {
		_, err := service.Execute(ctx, lifecycle.ExecuteRequest{
			CourseID:  msg.CourseID,
			Operation: lifecycle.OperationCancel,
			ActorID:   msg.ActorID,
		})
		return err
	}

	handlerOpts := []commands.HandlerOption[CancelCourseRequestCommand]{
		commands.WithLogger[CancelCourseRequestCommand](logger),
		commands.WithOperation[CancelCourseRequestCommand]("courses.cancel"),
	}
	handlerOpts = append(handlerOpts, opts...)

	return &CancelCourseRequestHandler{
		inner: commands.NewHandler[CancelCourseRequestCommand](exec, handlerOpts...),
	}
}

// Execute satisfies command.Commander[CancelCourseRequestCommand].Execute.
func (h *CancelCourseRequestHandler) Execute(ctx context.Context, msg CancelCourseRequestCommand) error {
	return h.inner.Execute(ctx, msg)
}
