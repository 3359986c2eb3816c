package coursecmd

import (
	"context"

	validation "github.com/go-ozzo/ozzo-validation/v4"
	"github.com/baitalhikma/go-courses/internal/commands"
	"github.com/baitalhikma/go-courses/lifecycle"
	"github.com/baitalhikma/go-courses/pkg/interfaces"
	"github.com/google/uuid"
)

const deleteMessageType = "courses.lifecycle.delete"

// DeleteCourseCommand removes a course. With enrolled students the deletion
// is queued for review and a reason is mandatory.
type DeleteCourseCommand struct {
	CourseID uuid.UUID `json:"course_id"`
	Reason   string    `json:"reason,omitempty"`
	ActorID  uuid.UUID `json:"actor_id,omitempty"`
}

// Type implements command.Message.
func (DeleteCourseCommand) Type() string { return deleteMessageType }

// Validate ensures the message carries the required fields before reaching handlers.
func (m DeleteCourseCommand) Validate() error {
	errs := validation.Errors{}
	if m.CourseID == uuid.Nil {
		errs["course_id"] = validation.NewError("courses.lifecycle.delete.course_id_required", "course_id is required")
	}
	if len(errs) > 0 {
		return errs
	}
	return nil
}

// DeleteCourseHandler routes deletions through the lifecycle service.
type DeleteCourseHandler struct {
	inner *commands.Handler[DeleteCourseCommand]
}

// NewDeleteCourseHandler constructs a handler wired to the lifecycle service.
func NewDeleteCourseHandler(service lifecycle.Service, logger interfaces.Logger, opts ...commands.HandlerOption[DeleteCourseCommand]) *DeleteCourseHandler {
	exec := func(ctx context.Context, msg DeleteCourseCommand) error {
		_, err := service.Execute(ctx, lifecycle.ExecuteRequest{
			CourseID:  msg.CourseID,
			Operation: lifecycle.OperationDelete,
			Reason:    msg.Reason,
			ActorID:   msg.ActorID,
		})
		return err
	}

	handlerOpts := []commands.HandlerOption[DeleteCourseCommand]{
		commands.WithLogger[DeleteCourseCommand](logger),
		commands.WithOperation[DeleteCourseCommand]("courses.delete"),
	}
	handlerOpts = append(handlerOpts, opts...)

	return &DeleteCourseHandler{
		inner: commands.NewHandler[DeleteCourseCommand](exec, handlerOpts...),
	}
}

// Execute satisfies command.Commander[DeleteCourseCommand].Execute.
func (h *DeleteCourseHandler) Execute(ctx context.Context, msg DeleteCourseCommand) error {
	return h.inner.Execute(ctx, msg)
}
