package domain

import "errors"

var (
	ErrSheetNotFound  = errors.New("character sheet not found")
	ErrUnknownAbility = errors.New("unknown ability")
	ErrUnknownSkill   = errors.New("unknown skill")
	ErrUnknownField   = errors.New("unknown field")
)
