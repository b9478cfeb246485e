package main

import (
	"errors"

	"github.com/jcorbin/treeforth/internal/fileinput"
)

var (
	errStackUnderflow = errors.New("stack underflow")
	errEmptyStack     = errors.New("empty stack")
	errDivideByZero   = errors.New("divided by 0")
	errTypeMismatch   = errors.New("type mismatch")
	errRetOverflow    = errors.New("return stack overflow")
	errNoVariable     = errors.New("no operating variable")
	errNoLoop         = errors.New("loop index used outside of DO LOOP")

	errNestedDefinition       = errors.New("nested definition")
	errMissingWordName        = errors.New("missing word name")
	errMissingVariableName    = errors.New("missing variable name")
	errUnterminatedString     = errors.New("unterminated string")
	errUnterminatedDefinition = errors.New("unterminated definition")
)

type unknownTokenError string
type unknownWordError string
type unknownUserWordError string
type unknownVariableError string
type unmatchedError string
type unexpectedError string

func (tok unknownTokenError) Error() string     { return "unknown token: " + string(tok) }
func (name unknownWordError) Error() string     { return "unknown word: " + string(name) }
func (name unknownUserWordError) Error() string { return "unknown user word: " + string(name) }
func (name unknownVariableError) Error() string { return "unknown variable: " + string(name) }
func (kw unmatchedError) Error() string         { return "unmatched " + string(kw) }
func (kw unexpectedError) Error() string        { return "unexpected " + string(kw) }

// parseError annotates a classification error with the source location of
// the offending token; the message itself stays location free.
type parseError struct {
	fileinput.Location
	err error
}

func (pe parseError) Error() string { return pe.err.Error() }
func (pe parseError) Unwrap() error { return pe.err }

// fatalError marks an execution error that ends the whole run, rather than
// just the current command.
type fatalError struct{ error }

func (fe fatalError) Unwrap() error { return fe.error }

func isFatal(err error) bool {
	var fe fatalError
	return errors.As(err, &fe)
}
