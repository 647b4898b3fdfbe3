package programs

import (
	"encoding/binary"
	"errors"
	"fmt"
	"math"
	"reflect"

	"github.com/go-gl/mathgl/mgl32"
	"github.com/stewi1014/mandelview/view"
)

var ErrUnsupportedUniform = errors.New("unsupported uniform type")

// UniformBinding is the uniform block binding point shared by the fragment
// shader and the uniform buffer.
const UniformBinding = 0

// Uniforms is the fragment shader's uniform block. Field order is the block's
// member order.
type Uniforms struct {
	Center mgl32.Vec2 `uniform:"center"`
	Start  mgl32.Vec2 `uniform:"start"`
	Scale  float32    `uniform:"scale"`
	Aspect float32    `uniform:"aspect"`
	Iters  int32      `uniform:"iters"`
}

func NewUniforms(s view.State) Uniforms {
	return Uniforms{
		Center: mgl32.Vec2{float32(s.Center[0]), float32(s.Center[1])},
		Start:  mgl32.Vec2{float32(s.Start[0]), float32(s.Start[1])},
		Scale:  float32(s.Scale),
		Aspect: float32(s.Aspect),
		Iters:  s.Iterations,
	}
}

// Std140 returns u packed with std140 layout rules.
func (u Uniforms) Std140() ([]byte, error) {
	return PackStd140(&u)
}

// PackStd140 packs the fields of the struct pointed to by v as a std140
// uniform block.
func PackStd140(v any) ([]byte, error) {
	rv := reflect.ValueOf(v)
	if rv.Kind() != reflect.Pointer || rv.Elem().Kind() != reflect.Struct {
		return nil, fmt.Errorf("%w: %T is not a pointer to a struct", ErrUnsupportedUniform, v)
	}
	rv = rv.Elem()

	var buf []byte
	maxAlign := 16
	for i := 0; i < rv.NumField(); i++ {
		f := rv.Field(i)
		if rv.Type().Field(i).Tag.Get("uniform") == "" {
			continue
		}

		words, align, err := std140Words(f)
		if err != nil {
			return nil, fmt.Errorf("field %v: %w", rv.Type().Field(i).Name, err)
		}

		buf = pad(buf, align)
		for _, w := range words {
			buf = binary.LittleEndian.AppendUint32(buf, w)
		}
	}

	return pad(buf, maxAlign), nil
}

func std140Words(f reflect.Value) (words []uint32, align int, err error) {
	switch f.Type() {
	case reflect.TypeOf(float32(0)):
		return []uint32{math.Float32bits(float32(f.Float()))}, 4, nil
	case reflect.TypeOf(int32(0)):
		return []uint32{uint32(int32(f.Int()))}, 4, nil
	case reflect.TypeOf(uint32(0)):
		return []uint32{uint32(f.Uint())}, 4, nil
	case reflect.TypeOf(mgl32.Vec2{}):
		v := f.Interface().(mgl32.Vec2)
		return floats(v[:]), 8, nil
	case reflect.TypeOf(mgl32.Vec3{}):
		v := f.Interface().(mgl32.Vec3)
		return floats(v[:]), 16, nil
	case reflect.TypeOf(mgl32.Vec4{}):
		v := f.Interface().(mgl32.Vec4)
		return floats(v[:]), 16, nil
	}

	return nil, 0, fmt.Errorf("%w %v", ErrUnsupportedUniform, f.Type())
}

func floats(v []float32) []uint32 {
	words := make([]uint32, len(v))
	for i := range v {
		words[i] = math.Float32bits(v[i])
	}
	return words
}

func pad(buf []byte, align int) []byte {
	for len(buf)%align != 0 {
		buf = append(buf, 0)
	}
	return buf
}
