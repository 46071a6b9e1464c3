package main

import (
	"encoding/json"
	"io"
	"net/http"
	"reflect"
	"strconv"

	. "github.com/KimGeorgy/bird-migration/util"
	"golang.org/x/exp/slog"
)

func ReadRequestBody[T any](r *http.Request) (T, error) {
	var req T
	data, err := io.ReadAll(r.Body)
	if err != nil {
		return req, err
	}
	if len(data) == 0 {
		return req, nil
	}
	if err := json.Unmarshal(data, &req); err != nil {
		return req, err
	}
	return req, nil
}

func WriteResponse[T any](w http.ResponseWriter, resp T, status int) {
	data, err := json.Marshal(resp)
	if err != nil {
		slog.Error(err.Error())
		w.WriteHeader(http.StatusInternalServerError)
		w.Write([]byte(err.Error()))
		return
	}
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	w.Write(data)
}

type Result struct {
	result any
	status int
}

func OK[T any](value T) Result {
	return Result{
		result: value,
		status: http.StatusOK,
	}
}

func BadRequest[T any](value T) Result {
	return Result{
		result: value,
		status: http.StatusBadRequest,
	}
}

func NotFound[T any](value T) Result {
	return Result{
		result: value,
		status: http.StatusNotFound,
	}
}

func InternalError[T any](value T) Result {
	return Result{
		result: value,
		status: http.StatusInternalServerError,
	}
}

func MapPost[F any](app *http.ServeMux, path string, handler func(F) Result) {
	app.HandleFunc("POST "+path, func(w http.ResponseWriter, r *http.Request) {
		slog.Debug("POST " + path)
		body, err := ReadRequestBody[F](r)
		if err != nil {
			slog.Error("failed POST "+path, "error", err.Error())
			WriteResponse(w, NewErrorResponse(path, err.Error()), http.StatusBadRequest)
			return
		}
		_WriteResult(w, "POST", path, handler(body))
	})
}

func MapGet[F any](app *http.ServeMux, path string, handler func(F) Result) {
	var val F
	typ := reflect.TypeOf(val)
	num_field := typ.NumField()
	fields := NewList[Triple[int, string, reflect.Kind]](num_field)
	for i := 0; i < num_field; i++ {
		field := typ.Field(i)
		tag := field.Tag.Get("json")
		if tag == "" {
			continue
		}
		// pointer fields stay nil when the parameter is missing
		field_type := field.Type
		if field_type.Kind() == reflect.Pointer {
			field_type = field_type.Elem()
		}
		switch field_type.Kind() {
		case reflect.Bool:
			fields.Add(MakeTriple(i, tag, reflect.Bool))
		case reflect.Int, reflect.Int8, reflect.Int16, reflect.Int32, reflect.Int64:
			fields.Add(MakeTriple(i, tag, reflect.Int))
		case reflect.Float32, reflect.Float64:
			fields.Add(MakeTriple(i, tag, reflect.Float64))
		case reflect.Uint, reflect.Uint8, reflect.Uint16, reflect.Uint32, reflect.Uint64:
			fields.Add(MakeTriple(i, tag, reflect.Uint))
		case reflect.String:
			fields.Add(MakeTriple(i, tag, reflect.String))
		}
	}
	app.HandleFunc("GET "+path, func(w http.ResponseWriter, r *http.Request) {
		slog.Debug("GET " + path)
		query := r.URL.Query()
		t := reflect.New(typ).Elem()
		for _, field := range fields {
			index := field.A
			name := field.B
			typ := field.C
			value := query.Get(name)
			if value == "" {
				continue
			}
			f := t.Field(index)
			if f.Kind() == reflect.Pointer {
				ptr := reflect.New(f.Type().Elem())
				f.Set(ptr)
				f = ptr.Elem()
			}
			var err error
			switch typ {
			case reflect.Bool:
				var v bool
				v, err = strconv.ParseBool(value)
				f.SetBool(v)
			case reflect.Int:
				var v int64
				v, err = strconv.ParseInt(value, 10, 64)
				f.SetInt(v)
			case reflect.Uint:
				var v uint64
				v, err = strconv.ParseUint(value, 10, 64)
				f.SetUint(v)
			case reflect.Float64:
				var v float64
				v, err = strconv.ParseFloat(value, 64)
				f.SetFloat(v)
			case reflect.String:
				f.SetString(value)
			}
			if err != nil {
				WriteResponse(w, NewErrorResponse(path, "invalid parameter "+name), http.StatusBadRequest)
				return
			}
		}
		value := t.Interface().(F)
		_WriteResult(w, "GET", path, handler(value))
	})
}

func _WriteResult(w http.ResponseWriter, method string, path string, res Result) {
	if res.status != http.StatusOK {
		slog.Warn("failed "+method+" "+path, "status", res.status)
		WriteResponse(w, NewErrorResponse(path, res.result), res.status)
	} else {
		WriteResponse(w, res.result, res.status)
	}
}
