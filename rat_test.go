// Copyright 2026 Hoa Le
// SPDX-License-Identifier: MIT

package exifmeta

import (
	"encoding"
	"math"
	"testing"

	qt "github.com/frankban/quicktest"
)

func TestRat(t *testing.T) {
	c := qt.New(t)

	c.Run("NewRat", func(c *qt.C) {
		ru := NewRat[uint32](1, 2)
		c.Assert(ru.Num(), qt.Equals, uint32(1))
		c.Assert(ru.Den(), qt.Equals, uint32(2))

		ri := NewRat[int32](-13, 3)
		c.Assert(ri.Num(), qt.Equals, int32(-13))
		c.Assert(ri.Den(), qt.Equals, int32(3))

		// The pair is stored verbatim, never reduced.
		ri = NewRat[int32](6, 9)
		c.Assert(ri.Num(), qt.Equals, int32(6))
		c.Assert(ri.Den(), qt.Equals, int32(9))
	})

	c.Run("ZeroDenominator", func(c *qt.C) {
		// Legal at this layer; only Float64 reflects it.
		ru := NewRat[uint32](10, 0)
		c.Assert(ru.Den(), qt.Equals, uint32(0))
		c.Assert(math.IsInf(ru.Float64(), 1), qt.IsTrue)

		ri := NewRat[int32](0, 0)
		c.Assert(math.IsNaN(ri.Float64()), qt.IsTrue)
	})

	c.Run("Float64", func(c *qt.C) {
		c.Assert(NewRat[uint32](1, 2).Float64(), qt.Equals, 0.5)
		c.Assert(NewRat[int32](-1, 2).Float64(), qt.Equals, -0.5)
	})

	c.Run("String", func(c *qt.C) {
		c.Assert(NewRat[uint32](1, 2).String(), qt.Equals, "1/2")
		c.Assert(NewRat[uint32](4, 1).String(), qt.Equals, "4")
	})

	c.Run("MarshalText", func(c *qt.C) {
		ru := NewRat[uint32](1, 2)
		text, err := ru.(encoding.TextMarshaler).MarshalText()
		c.Assert(err, qt.IsNil)
		c.Assert(string(text), qt.Equals, "1/2")
	})

	c.Run("UnmarshalText", func(c *qt.C) {
		ru := NewRat[uint32](1, 2)
		err := ru.(encoding.TextUnmarshaler).UnmarshalText([]byte("3/4"))
		c.Assert(err, qt.IsNil)
		c.Assert(ru.Num(), qt.Equals, uint32(3))
		c.Assert(ru.Den(), qt.Equals, uint32(4))

		err = ru.(encoding.TextUnmarshaler).UnmarshalText([]byte("4"))
		c.Assert(err, qt.IsNil)
		c.Assert(ru.Num(), qt.Equals, uint32(4))
		c.Assert(ru.Den(), qt.Equals, uint32(1))

		err = ru.(encoding.TextUnmarshaler).UnmarshalText([]byte("x"))
		c.Assert(err, qt.ErrorMatches, `failed to parse "x" as a rational number.*`)
	})
}
