package expr

import (
	"math"
	"sort"
)

// Func is a built-in function.
type Func int

const (
	FuncSqrt Func = iota
	FuncAbs
	FuncSin
	FuncCos
	FuncTan
	FuncExp
	FuncLog
	FuncAtan
	FuncPow
	FuncMin
	FuncMax
)

type funcInfo struct {
	name string
	// minArgs and maxArgs bound the accepted argument count; maxArgs < 0
	// means variadic.
	minArgs, maxArgs int
}

var funcTable = [...]funcInfo{
	FuncSqrt: {"sqrt", 1, 1},
	FuncAbs:  {"abs", 1, 1},
	FuncSin:  {"sin", 1, 1},
	FuncCos:  {"cos", 1, 1},
	FuncTan:  {"tan", 1, 1},
	FuncExp:  {"exp", 1, 1},
	FuncLog:  {"log", 1, 1},
	FuncAtan: {"atan", 1, 1},
	FuncPow:  {"pow", 2, 2},
	FuncMin:  {"min", 2, -1},
	FuncMax:  {"max", 2, -1},
}

// funcsByName maps source identifiers to functions. "ln" is an alias of log.
var funcsByName = map[string]Func{
	"sqrt": FuncSqrt,
	"abs":  FuncAbs,
	"sin":  FuncSin,
	"cos":  FuncCos,
	"tan":  FuncTan,
	"exp":  FuncExp,
	"log":  FuncLog,
	"ln":   FuncLog,
	"atan": FuncAtan,
	"pow":  FuncPow,
	"min":  FuncMin,
	"max":  FuncMax,
}

var constants = map[string]float64{
	"pi": math.Pi,
	"e":  math.E,
}

var variables = map[string]Var{
	"x": X,
	"y": Y,
	"z": Z,
}

func (f Func) String() string {
	if f < 0 || int(f) >= len(funcTable) {
		return "unknown"
	}
	return funcTable[f].name
}

// FuncNames returns the source names of all built-in functions,
// including aliases.
func FuncNames() []string {
	names := make([]string, 0, len(funcsByName))
	for name := range funcsByName {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}
