package model

import internalmodel "github.com/goliatone/go-roleform/internal/model"

type FieldType = internalmodel.FieldType

const (
	FieldTypeString  = internalmodel.FieldTypeString
	FieldTypeInteger = internalmodel.FieldTypeInteger
	FieldTypeNumber  = internalmodel.FieldTypeNumber
	FieldTypeBoolean = internalmodel.FieldTypeBoolean
	FieldTypeArray   = internalmodel.FieldTypeArray
	FieldTypeObject  = internalmodel.FieldTypeObject
)

const (
	ValidationRuleMin       = internalmodel.ValidationRuleMin
	ValidationRuleMax       = internalmodel.ValidationRuleMax
	ValidationRuleMinLength = internalmodel.ValidationRuleMinLength
	ValidationRuleMaxLength = internalmodel.ValidationRuleMaxLength
	ValidationRuleMinItems  = internalmodel.ValidationRuleMinItems
	ValidationRulePattern   = internalmodel.ValidationRulePattern
)

const (
	HintOrder          = internalmodel.HintOrder
	HintWidget         = internalmodel.HintWidget
	HintLabel          = internalmodel.HintLabel
	HintLabelKey       = internalmodel.HintLabelKey
	HintPlaceholder    = internalmodel.HintPlaceholder
	HintPlaceholderKey = internalmodel.HintPlaceholderKey
	HintHelpText       = internalmodel.HintHelpText
	HintHelpTextKey    = internalmodel.HintHelpTextKey
	HintInputType      = internalmodel.HintInputType
	HintVisibilityRule = internalmodel.HintVisibilityRule
	HintGroup          = internalmodel.HintGroup
	HintRequired       = internalmodel.HintRequired
	HintSubmitLabel    = internalmodel.HintSubmitLabel
	HintSubmitLabelKey = internalmodel.HintSubmitLabelKey
	HintTitleKey       = internalmodel.HintTitleKey
)

const (
	WidgetText          = internalmodel.WidgetText
	WidgetURL           = internalmodel.WidgetURL
	WidgetNumber        = internalmodel.WidgetNumber
	WidgetTextarea      = internalmodel.WidgetTextarea
	WidgetSelect        = internalmodel.WidgetSelect
	WidgetCheckboxGroup = internalmodel.WidgetCheckboxGroup
)

type ValidationRule = internalmodel.ValidationRule
type Field = internalmodel.Field
type FormModel = internalmodel.FormModel
