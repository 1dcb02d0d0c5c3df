package errors_test

import (
	"fmt"

	"github.com/optimade/optimade-go/pkg/errors"
)

// Example demonstrates basic error creation and checking.
func Example() {
	err := &errors.NotFoundError{
		Resource: "structures",
		ID:       "mpf_1",
	}

	if errors.IsNotFound(err) {
		fmt.Println("Resource not found")
	}

	// Output: Resource not found
}

// Example_validationError shows how a handler recovers the offending field.
func Example_validationError() {
	var err error = errors.NewValidationError("response_fields", "Nsites", "fieldlist", "")

	var verr *errors.ValidationError
	if errors.As(err, &verr) {
		fmt.Println(verr.Field)
	}

	// Output: response_fields
}
