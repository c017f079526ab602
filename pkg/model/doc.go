// Package model defines the typed form model consumed by renderers and the
// embedded registration form definition. Schema extensions under the
// `x-roleform` namespace surface as Field.UIHints (order, widget, labelKey,
// placeholderKey, visibilityRule). Validation rules keep canonical kinds
// (min, pattern, minItems) with string parameters.
package model
