// Package main implements treeforth, a tree walking Forth.
//
// treeforth reads Forth source one line at a time, where each line is a command.
// Every command is run in turn and, unless it fails, acknowledged with "ok",
// like the classic interactive Forth prompt:
//
//	2 3 + .
//	5 ok
//
// Unlike a threaded Forth, nothing is compiled into memory. Source is instead
// run through three stages:
//
//	tokenize   split words and line ends, dropping ( comments )
//	classify   tag each word as a literal, builtin, keyword, variable or call
//	structure  nest IF ELSE THEN, BEGIN UNTIL, and DO LOOP into trees
//
// The resulting trees are then walked by the executor, against an operand stack
// of integers and strings.
//
// # Words
//
// Numbers push themselves; text is printed with ." like this" and strings may
// span several words. Builtin words are the arithmetic + - * / MOD, the
// comparisons = > <, the bitwise AND OR XOR INVERT, stack shufflers DUP SWAP
// DROP OVER ROT, and the output words . DUMP EMIT CR. Truth is -1 and falsehood 0.
//
// New words are defined with colon definitions, which may be recursive:
//
//	: FAC DUP 1 > IF DUP 1 - FAC * THEN ;
//
// Control flow blocks may span lines, within a definition or not:
//
//	cond IF ... [ELSE ...] THEN
//	BEGIN ... cond UNTIL
//	limit start DO ... I ... LOOP
//
// # Variables
//
// VARIABLE X declares a heap cell, named by X and allocated at the next address
// counting up from 1000. Naming a variable selects it, so that the following
// ! stores the top of stack into it, and @ pushes its value:
//
//	VARIABLE X
//	42 X !
//	X @ .
//
// Builtins take precedence over user words of the same name; all word and
// variable names are case insensitive.
//
// # Sessions
//
// A VM keeps its stack, words, and variables between runs, and may save all of
// them into a CBOR encoded image to be restored later. See the -save-image and
// -load-image flags, and the [image] section of a -config TOML file.
package main
