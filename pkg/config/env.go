package lconfig

import (
	"encoding/json"
	"reflect"

	"github.com/caarlos0/env/v6"
	"github.com/pkg/errors"
)

var parseFuncs = map[reflect.Type]env.ParserFunc{
	reflect.TypeOf(map[string]string{}): env.ParserFunc(func(v string) (interface{}, error) {
		ret := make(map[string]string)
		err := json.Unmarshal([]byte(v), &ret)
		return ret, err
	}),
}

func Parse(v interface{}) error {
	return errors.WithStack(env.ParseWithFuncs(v, parseFuncs))
}

func MustParse(v interface{}) {
	if err := Parse(v); err != nil {
		panic(err)
	}
}

type ParseFuncs map[reflect.Type]env.ParserFunc

func (f ParseFuncs) With(t reflect.Type, fn env.ParserFunc) ParseFuncs {
	if f == nil {
		f = make(map[reflect.Type]env.ParserFunc)
	}
	f[t] = fn
	return f
}

func ParseWithFuncs(v interface{}, funcs ParseFuncs) error {
	newFuncs := make(map[reflect.Type]env.ParserFunc)
	for k, fn := range funcs {
		newFuncs[k] = fn
	}
	for k, fn := range parseFuncs {
		newFuncs[k] = fn
	}

	return errors.WithStack(env.ParseWithFuncs(v, newFuncs))
}
