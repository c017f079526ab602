package model

import (
	"context"
	_ "embed"
	"sync"
)

// RegistrationOperationID names the employee registration operation.
const RegistrationOperationID = "registerEmployee"

//go:embed registration.openapi.yaml
var registrationDocument []byte

var registrationCache struct {
	sync.Mutex
	form  FormModel
	ready bool
}

// RegistrationDocument returns a copy of the embedded OpenAPI document.
func RegistrationDocument() []byte {
	return append([]byte(nil), registrationDocument...)
}

// Registration returns the employee registration form. The document is
// parsed once; later calls return a copy of the cached model.
func Registration(ctx context.Context) (FormModel, error) {
	registrationCache.Lock()
	defer registrationCache.Unlock()
	if registrationCache.ready {
		return cloneForm(registrationCache.form), nil
	}
	form, err := Load(ctx, registrationDocument, RegistrationOperationID, WithDocumentValidation())
	if err != nil {
		return FormModel{}, err
	}
	registrationCache.form = form
	registrationCache.ready = true
	return cloneForm(form), nil
}

func cloneForm(form FormModel) FormModel {
	out := form
	out.Fields = append([]Field(nil), form.Fields...)
	return out
}
