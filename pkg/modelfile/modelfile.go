// Package modelfile parses MiniLight's model-file grammar: a magic header,
// iteration count, image dimensions, camera parameters, sky/ground colours
// and a triangle list, all as whitespace/parenthesis-separated tokens read
// through a tokenstream.TokenStream. It is grounded on the teacher's
// pkg/scene/scene_discovery.go, which reads a similar flat on-disk
// description into scene construction parameters, generalized to
// MiniLight's fixed positional grammar.
package modelfile

import (
	"errors"
	"fmt"
	"io"
	"strconv"

	"github.com/hxa7241/minilight/pkg/core"
	"github.com/hxa7241/minilight/pkg/geometry"
	"github.com/hxa7241/minilight/pkg/tokenstream"
)

// MaxTriangles bounds the triangle list length the grammar accepts.
const MaxTriangles = 1 << 24

const magic = "#MiniLight"

// Model holds every value parsed from a model file, ready to build a
// camera, an image and a scene from.
type Model struct {
	Iterations int

	ImageWidth  int
	ImageHeight int

	CameraPosition  core.Vec3
	CameraDirection core.Vec3
	CameraAngle     float64

	SkyEmission      core.Vec3
	GroundReflection core.Vec3

	Triangles []*geometry.Triangle
}

// Parse reads a Model from r, which must be formatted per the MiniLight
// model-file grammar. Any malformed or missing field is a fatal error;
// end-of-file while reading the triangle list ends the list normally.
func Parse(r io.Reader) (*Model, error) {
	ts := tokenstream.New(r)
	defer ts.Close()

	if err := expectMagic(ts); err != nil {
		return nil, err
	}

	m := &Model{}

	var err error
	if m.Iterations, err = readInt(ts, "iteration count"); err != nil {
		return nil, err
	}
	if m.ImageWidth, err = readInt(ts, "image width"); err != nil {
		return nil, err
	}
	if m.ImageHeight, err = readInt(ts, "image height"); err != nil {
		return nil, err
	}

	if m.CameraPosition, err = readVec3(ts, "camera position"); err != nil {
		return nil, err
	}
	if m.CameraDirection, err = readVec3(ts, "camera direction"); err != nil {
		return nil, err
	}
	if m.CameraAngle, err = readReal(ts, "camera view angle"); err != nil {
		return nil, err
	}

	if m.SkyEmission, err = readVec3(ts, "sky emission"); err != nil {
		return nil, err
	}
	if m.GroundReflection, err = readVec3(ts, "ground reflection"); err != nil {
		return nil, err
	}

	triangles, err := readTriangles(ts)
	if err != nil {
		return nil, err
	}
	m.Triangles = triangles

	return m, nil
}

// expectMagic reads the magic header token. TokenStream does not treat "#"
// specially, so "#MiniLight" normally arrives as a single token; a form
// with embedded whitespace ("# MiniLight") arrives as two, which is also
// accepted by concatenating it with the next token.
func expectMagic(ts *tokenstream.TokenStream) error {
	first, err := ts.Next()
	if err != nil {
		return fmt.Errorf("modelfile: reading magic: %w", err)
	}
	if first == magic {
		return nil
	}

	second, err := ts.Next()
	if err != nil {
		return fmt.Errorf("modelfile: reading magic: %w", err)
	}
	if first+second != magic {
		return fmt.Errorf("modelfile: missing %q magic header", magic)
	}
	return nil
}

func readTriangles(ts *tokenstream.TokenStream) ([]*geometry.Triangle, error) {
	var triangles []*geometry.Triangle

	for {
		v0, err := readVec3(ts, "triangle vertex 0")
		if errors.Is(err, tokenstream.ErrEndOfStream) {
			return triangles, nil
		}
		if err != nil {
			return nil, err
		}

		v1, err := readVec3(ts, "triangle vertex 1")
		if err != nil {
			return nil, err
		}
		v2, err := readVec3(ts, "triangle vertex 2")
		if err != nil {
			return nil, err
		}
		reflectivity, err := readVec3(ts, "triangle reflectivity")
		if err != nil {
			return nil, err
		}
		emissivity, err := readVec3(ts, "triangle emissivity")
		if err != nil {
			return nil, err
		}

		if len(triangles) >= MaxTriangles {
			return nil, fmt.Errorf("modelfile: triangle list exceeds %d items", MaxTriangles)
		}
		triangles = append(triangles, geometry.New(v0, v1, v2, reflectivity, emissivity))
	}
}

// readVec3 reads the three tokens "x y z" between a pair of parentheses.
// The parentheses themselves are never seen here: tokenstream.Next treats
// "(" and ")" as separator characters, not tokens.
func readVec3(ts *tokenstream.TokenStream, field string) (core.Vec3, error) {
	x, err := readReal(ts, field)
	if err != nil {
		return core.Vec3{}, err
	}
	y, err := readReal(ts, field)
	if err != nil {
		return core.Vec3{}, err
	}
	z, err := readReal(ts, field)
	if err != nil {
		return core.Vec3{}, err
	}

	return core.NewVec3(x, y, z), nil
}

func readReal(ts *tokenstream.TokenStream, field string) (float64, error) {
	tok, err := ts.Next()
	if err != nil {
		return 0, wrapOrEOF(err, field)
	}
	value, parseErr := strconv.ParseFloat(tok, 64)
	if parseErr != nil {
		return 0, fmt.Errorf("modelfile: %s: not a number: %q", field, tok)
	}
	return value, nil
}

func readInt(ts *tokenstream.TokenStream, field string) (int, error) {
	tok, err := ts.Next()
	if err != nil {
		return 0, wrapOrEOF(err, field)
	}
	value, parseErr := strconv.Atoi(tok)
	if parseErr != nil {
		return 0, fmt.Errorf("modelfile: %s: not an integer: %q", field, tok)
	}
	return value, nil
}

// wrapOrEOF preserves tokenstream.ErrEndOfStream for errors.Is checks in
// readTriangles, while still giving every other caller a field-labelled
// fatal error.
func wrapOrEOF(err error, field string) error {
	if errors.Is(err, tokenstream.ErrEndOfStream) {
		return err
	}
	return fmt.Errorf("modelfile: %s: %w", field, err)
}
