package tensor

import (
	"reflect"

	"github.com/pkg/errors"
)

// FromValue converts an array-like Go value into an Array, casting elements to float64.
//
// Accepted values:
//   - *Array (cloned)
//   - numeric scalars (int*, uint*, float32, float64) and bool, giving a rank-0 array
//   - slices and arrays of the above, nested to any depth, giving one dimension per level
//
// Booleans become 1 and 0. Ragged nesting fails with ErrShapeMismatch.
func FromValue(value any) (*Array, error) {
	if value == nil {
		return nil, errors.New("tensor.FromValue: nil value")
	}
	if arr, ok := value.(*Array); ok {
		if arr == nil {
			return nil, errors.New("tensor.FromValue: nil *Array")
		}
		return New(arr.shape, arr.data)
	}

	rv := reflect.ValueOf(value)
	shape, err := inferShape(rv)
	if err != nil {
		return nil, err
	}

	data := make([]float64, 0, shape.NumElements())
	data, err = flatten(rv, shape, 0, data)
	if err != nil {
		return nil, err
	}
	return Wrap(shape, data), nil
}

// inferShape walks the first element of every nesting level.
func inferShape(rv reflect.Value) (Shape, error) {
	var shape Shape
	for {
		switch rv.Kind() {
		case reflect.Slice, reflect.Array:
			shape = append(shape, rv.Len())
			if rv.Len() == 0 {
				return shape, nil
			}
			rv = rv.Index(0)
		case reflect.Interface, reflect.Pointer:
			if rv.IsNil() {
				return nil, errors.New("tensor.FromValue: nil element")
			}
			rv = rv.Elem()
		default:
			if _, ok := scalarOf(rv); !ok {
				return nil, errors.Errorf("tensor.FromValue: unsupported element type %s", rv.Type())
			}
			return shape, nil
		}
	}
}

func flatten(rv reflect.Value, shape Shape, dim int, out []float64) ([]float64, error) {
	for rv.Kind() == reflect.Interface || rv.Kind() == reflect.Pointer {
		if rv.IsNil() {
			return nil, errors.New("tensor.FromValue: nil element")
		}
		rv = rv.Elem()
	}

	if dim == len(shape) {
		v, ok := scalarOf(rv)
		if !ok {
			return nil, errors.Wrapf(ErrShapeMismatch, "tensor.FromValue: ragged value, expected scalar at depth %d, got %s", dim, rv.Type())
		}
		return append(out, v), nil
	}

	if rv.Kind() != reflect.Slice && rv.Kind() != reflect.Array {
		return nil, errors.Wrapf(ErrShapeMismatch, "tensor.FromValue: ragged value, expected sequence at depth %d, got %s", dim, rv.Type())
	}
	if rv.Len() != shape[dim] {
		return nil, errors.Wrapf(ErrShapeMismatch, "tensor.FromValue: ragged value, length %d at depth %d, want %d", rv.Len(), dim, shape[dim])
	}

	var err error
	for i := 0; i < rv.Len(); i++ {
		out, err = flatten(rv.Index(i), shape, dim+1, out)
		if err != nil {
			return nil, err
		}
	}
	return out, nil
}

func scalarOf(rv reflect.Value) (float64, bool) {
	switch rv.Kind() {
	case reflect.Float32, reflect.Float64:
		return rv.Float(), true
	case reflect.Int, reflect.Int8, reflect.Int16, reflect.Int32, reflect.Int64:
		return float64(rv.Int()), true
	case reflect.Uint, reflect.Uint8, reflect.Uint16, reflect.Uint32, reflect.Uint64:
		return float64(rv.Uint()), true
	case reflect.Bool:
		if rv.Bool() {
			return 1, true
		}
		return 0, true
	default:
		return 0, false
	}
}
