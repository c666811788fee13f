package cmdline

import (
	"fmt"
	"reflect"
	"strconv"
	"time"
)

const (
	tagOption  = "cmdline"
	tagFormat  = "cmdline-format"
	tagDefault = "cmdline-default"
)

const (
	defaultTimeFormat = "2006-01-02 15:04:05" // no TimeZone!
)

var allowedTypes = map[reflect.Type]struct{}{
	reflect.TypeOf(string("")):       {},
	reflect.TypeOf(false):            {},
	reflect.TypeOf(int(0)):           {},
	reflect.TypeOf(float64(0.0)):     {},
	reflect.TypeOf(time.Time{}):      {},
	reflect.TypeOf(time.Duration(0)): {},
}

// -----

// Unwrap takes an argument, which must be a pointer to a struct, and
// returns a reflect.Value of the pointed to struct. It returns an error
// if the argument is not a pointer to a struct.
func unwrap(s any) (reflect.Value, error) {
	v := reflect.ValueOf(s)

	if v.Kind() != reflect.Pointer {
		return reflect.Value{}, fmt.Errorf("arg must be ptr to struct")
	}
	v = v.Elem()

	if v.Kind() != reflect.Struct {
		return reflect.Value{}, fmt.Errorf("arg must be ptr to struct")
	}

	return v, nil
}

// Bind copies the parse results into the struct pointed to by data.
// Each field tagged `cmdline:"NAME"` receives the entry for the option
// named NAME (real name or real short name):
//
//	bool            : true if the option is present
//	scalar          : the first captured argument
//	slice of scalar : all captured arguments
//
// Scalar types are string, int, float64, time.Time, and time.Duration.
// Times are parsed with the layout in the cmdline-format tag, or
// "2006-01-02 15:04:05" if there is none.
//
// A scalar field may carry a cmdline-default tag. Its value is converted
// like an argument and assigned if the option is absent, or if it was
// given without arguments. Otherwise fields of absent options, scalar
// fields of options without arguments, and untagged fields are left
// alone, so values set before the call act as defaults as well.
//
// Returns an error if data is not a pointer to a struct, if a tagged
// field has an unsupported type, if a slice field has a default, or if
// an argument or default cannot be converted.
func (p *Parser) Bind(data any) error {
	v, err := unwrap(data)
	if err != nil {
		return err
	}

	typeInfo := v.Type()

	for i := 0; i < v.NumField(); i++ {
		field := typeInfo.Field(i)

		name, ok := field.Tag.Lookup(tagOption)
		if !ok {
			continue
		}
		if !field.IsExported() {
			return fmt.Errorf("field %s: must be exported", field.Name)
		}

		isSlice, baseType := false, field.Type
		if field.Type.Kind() == reflect.Slice {
			isSlice, baseType = true, field.Type.Elem()
		}
		if _, ok := allowedTypes[baseType]; !ok {
			return fmt.Errorf("field %s: %s not permitted", field.Name,
				field.Type.String())
		}

		def, hasDefault := field.Tag.Lookup(tagDefault)
		if hasDefault && isSlice {
			return fmt.Errorf("field %s: default not permitted on slice",
				field.Name)
		}

		format := field.Tag.Get(tagFormat)

		e, ok := p.find(name)
		switch {
		case ok && (isSlice || baseType == reflect.TypeOf(true) || len(e.Args) > 0):
			if err := bindField(v.Field(i), baseType, isSlice, e.Args,
				format); err != nil {
				return fmt.Errorf("field %s (%s): %w", field.Name, name, err)
			}

		case hasDefault:
			vv, err := convertToType(def, baseType, format)
			if err != nil {
				return fmt.Errorf("field %s (%s): default: %w", field.Name,
					name, err)
			}
			v.Field(i).Set(vv)
		}
	}

	return nil
}

// BindField sets the struct field fv from the captured arguments.
func bindField(fv reflect.Value, baseType reflect.Type, isSlice bool,
	args []string, format string) error {

	switch {
	case baseType == reflect.TypeOf(true) && !isSlice:
		fv.SetBool(true)

	case isSlice:
		s := reflect.MakeSlice(reflect.SliceOf(baseType), 0, len(args))
		for _, a := range args {
			vv, err := convertToType(a, baseType, format)
			if err != nil {
				return err
			}
			s = reflect.Append(s, vv)
		}
		fv.Set(s)

	case len(args) > 0:
		vv, err := convertToType(args[0], baseType, format)
		if err != nil {
			return err
		}
		fv.Set(vv)
	}

	return nil
}

// ConvertToType converts value into the given base type. Conversion to
// time.Time uses the given format, unless it is empty.
// Returns a reflect.Value of the converted value.
// Returns an error if the conversion fails.
func convertToType(value string, baseType reflect.Type,
	format string) (reflect.Value, error) {

	switch baseType {
	case reflect.TypeOf(true):
		b, err := strconv.ParseBool(value)
		if err != nil {
			return reflect.Value{}, err
		}
		return reflect.ValueOf(b), nil

	case reflect.TypeOf(string("")):
		return reflect.ValueOf(value), nil

	case reflect.TypeOf(int(0)):
		i, err := strconv.Atoi(value)
		if err != nil {
			return reflect.Value{}, err
		}
		return reflect.ValueOf(i), nil

	case reflect.TypeOf(float64(0.0)):
		f, err := strconv.ParseFloat(value, 64)
		if err != nil {
			return reflect.Value{}, err
		}
		return reflect.ValueOf(f), nil

	case reflect.TypeOf(time.Time{}):
		if format == "" {
			format = defaultTimeFormat
		}
		t, err := time.Parse(format, value)
		if err != nil {
			return reflect.Value{}, err
		}
		return reflect.ValueOf(t), nil

	case reflect.TypeOf(time.Duration(0)):
		d, err := time.ParseDuration(value)
		if err != nil {
			return reflect.Value{}, err
		}
		return reflect.ValueOf(d), nil

	default:
		// Never get here
		return reflect.Value{}, fmt.Errorf("invalid type")
	}
}
