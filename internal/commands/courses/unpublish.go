package coursecmd

import (
	"context"

	validation "github.com/go-ozzo/ozzo-validation/v4"
	"github.com/baitalhikma/go-courses/internal/commands"
	"github.com/baitalhikma/go-courses/lifecycle"
	"github.com/baitalhikma/go-courses/pkg/interfaces"
	"github.com/google/uuid"
)

const unpublishMessageType = "courses.lifecycle.unpublish"

// UnpublishCourseCommand takes a published course back to draft. When students
// are enrolled a reason is mandatory and the request goes through review.
type UnpublishCourseCommand struct {
	CourseID uuid.UUID `json:"course_id"`
	Reason   string    `json:"reason,omitempty"`
	ActorID  uuid.UUID `json:"actor_id,omitempty"`
}

// Type implements command.Message.
func (UnpublishCourseCommand) Type() string { return unpublishMessageType }

// Validate ensures the message carries the required fields before reaching handlers.
func (m UnpublishCourseCommand) Validate() error {
	errs := validation.Errors{}
	if m.CourseID == uuid.Nil {
		errs["course_id"] = validation.NewError("courses.lifecycle.unpublish.course_id_required", "course_id is required")
	}
	if len(errs) > 0 {
		return errs
	}
	return nil
}

// UnpublishCourseHandler routes unpublish operations through the lifecycle service.
type UnpublishCourseHandler struct {
	inner *commands.Handler[UnpublishCourseCommand]
}

// NewUnpublishCourseHandler constructs a handler wired to the lifecycle service.
func NewUnpublishCourseHandler(service lifecycle.Service, logger interfaces.Logger, opts ...commands.HandlerOption[UnpublishCourseCommand]) *UnpublishCourseHandler {
	exec := func(ctx context.Context, msg UnpublishCourseCommand) error {
		_, err := service.Execute(ctx, lifecycle.ExecuteRequest{
			CourseID:  msg.CourseID,
			Operation: lifecycle.OperationUnpublish,
			Reason:    msg.Reason,
			ActorID:   msg.ActorID,
		})
		return err
	}

	handlerOpts := []commands.HandlerOption[UnpublishCourseCommand]{
		commands.WithLogger[UnpublishCourseCommand](logger),
		commands.WithOperation[UnpublishCourseCommand]("courses.unpublish"),
	}
	handlerOpts = append(handlerOpts, opts...)

	return &UnpublishCourseHandler{
		inner: commands.NewHandler[UnpublishCourseCommand](exec, handlerOpts...),
	}
}

// Execute satisfies command.Commander[UnpublishCourseCommand].Execute.
func (h *UnpublishCourseHandler) Execute(ctx context.Context, msg UnpublishCourseCommand) error {
	return h.inner.Execute(ctx, msg)
}
