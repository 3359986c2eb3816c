package catalog

import (
	courses "github.com/baitalhikma/go-courses/catalog"
)

// Aliases into the public catalog contract so internal code reads naturally.
type (
	Course             = courses.Course
	Subject            = courses.Subject
	Grade              = courses.Grade
	NotFoundError      = courses.NotFoundError
	TransitionMutation = courses.TransitionMutation
	ListQuery          = courses.ListQuery
	ListOption         = courses.ListOption
)
