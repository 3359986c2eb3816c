package coursecmd

import (
	"context"

	validation "github.com/go-ozzo/ozzo-validation/v4"
	"github.com/baitalhikma/go-courses/internal/commands"
	"github.com/baitalhikma/go-courses/lifecycle"
	"github.com/baitalhikma/go-courses/pkg/interfaces"
	"github.com/google/uuid"
)

const requestPublishMessageType = "courses.lifecycle.request_publish"

// RequestPublishCourseCommand queues a course for publication review.
type RequestPublishCourseCommand struct {
	CourseID uuid.UUID `json:"course_id"`
	Note     string    `json:"note,omitempty"`
	ActorID  uuid.UUID `json:"actor_id,omitempty"`
}

// Type implements command.Message.
func (RequestPublishCourseCommand) Type() string { return requestPublishMessageType }

// Validate ensures the message carries the required fields before reaching handlers.
func (m RequestPublishCourseCommand) Validate() error {
	errs := validation.Errors{}
	if m.CourseID == uuid.Nil {
		errs["course_id"] = validation.NewError("courses.lifecycle.request_publish.course_id_required", "course_id is required")
	}
	if len(errs) > 0 {
		return errs
	}
	return nil
}

// RequestPublishCourseHandler submits publication requests through the lifecycle service.
type RequestPublishCourseHandler struct {
	inner *commands.Handler[RequestPublishCourseCommand]
}

// NewRequestPublishCourseHandler constructs a handler wired to the lifecycle service.
func NewRequestPublishCourseHandler(service lifecycle.Service, logger interfaces.Logger, opts ...commands.HandlerOption[RequestPublishCourseCommand]) *RequestPublishCourseHandler {
	exec := func(ctx context.Context, msg RequestPublishCourseCommand) error {
		_, err := service.Execute(ctx, lifecycle.ExecuteRequest{
			CourseID:  msg.CourseID,
			Operation: lifecycle.OperationRequestPublish,
			Reason:    msg.Note,
			ActorID:   msg.ActorID,
		})
		return err
	}

	handlerOpts := []commands.HandlerOption[RequestPublishCourseCommand]{
		commands.WithLogger[RequestPublishCourseCommand](logger),
		commands.WithOperation[RequestPublishCourseCommand]("courses.request_publish"),
	}
	handlerOpts = append(handlerOpts, opts...)

	return &RequestPublishCourseHandler{
		inner: commands.NewHandler[RequestPublishCourseCommand](exec, handlerOpts...),
	}
}

// Execute satisfies command.Commander[RequestPublishCourseCommand].Execute.
func (h *RequestPublishCourseHandler) Execute(ctx context.Context, msg RequestPublishCourseCommand) error {
	return h.inner.Execute(ctx, msg)
}
