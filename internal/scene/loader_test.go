package scene_test

import (
	"bytes"
	"errors"
	"os"
	"path/filepath"
	"strings"

	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"

	"github.com/san-kum/orbitbox/internal/physics"
	"github.com/san-kum/orbitbox/internal/scene"
)

const twoBodies = `2
0.5 -1.5 0 0  0.1 0 0  255 0 0  1 0
0.5  1.5 0 0 -0.1 0 0  0 255 0  2 1
`

var _ = Describe("Parse", func() {
	It("reads every body record", func() {
		es, err := scene.Parse(strings.NewReader(twoBodies), dt)
		Expect(err).NotTo(HaveOccurred())
		Expect(es).To(HaveLen(2))

		a, b := es[0], es[1]
		Expect(a.Body.Position.X()).To(Equal(-1.5))
		Expect(a.Body.Velocity(dt).X()).To(BeNumerically("~", 0.1, 1e-12))
		Expect(a.Body.Mass).To(BeNumerically("~", physics.SphereMass(0.5, 1), 1e-12))
		Expect(a.Look.Color).To(Equal([3]uint8{255, 0, 0}))
		Expect(a.Look.Light).To(BeFalse())

		Expect(b.Body.Density).To(Equal(2.0))
		Expect(b.Body.Mass).To(BeNumerically("~", physics.SphereMass(0.5, 2), 1e-12))
		Expect(b.Look.Light).To(BeTrue())
	})

	It("accepts an empty scene", func() {
		es, err := scene.Parse(strings.NewReader("0\n"), dt)
		Expect(err).NotTo(HaveOccurred())
		Expect(es).To(BeEmpty())
	})

	DescribeTable("fails fast without partial results",
		func(input, field string) {
			es, err := scene.Parse(strings.NewReader(input), dt)
			Expect(es).To(BeNil())
			Expect(err).To(MatchError(scene.ErrMalformedScene))

			var pe *scene.ParseError
			Expect(errors.As(err, &pe)).To(BeTrue())
			Expect(pe.Field).To(Equal(field))
		},
		Entry("empty input", "", "count"),
		Entry("bad count", "two", "count"),
		Entry("negative count", "-1", "count"),
		Entry("truncated body", "2\n0.5 0 0 0 0 0 0 1 1 1 1 0\n0.5 1 1", "z"),
		Entry("unreadable field", "1\n0.5 0 zero 0 0 0 0 1 1 1 1 0", "y"),
		Entry("zero radius", "1\n0 0 0 0 0 0 0 1 1 1 1 0", "radius"),
		Entry("negative density", "1\n0.5 0 0 0 0 0 0 1 1 1 -1 0", "density"),
		Entry("colour out of range", "1\n0.5 0 0 0 0 0 0 1 256 1 1 0", "colorG"),
		Entry("non-finite value", "1\n0.5 0 0 Inf 0 0 0 1 1 1 1 0", "z"),
		Entry("fractional light flag", "1\n0.5 0 0 0 0 0 0 1 1 1 1 0.5", "lightFlag"),
		Entry("huge count", "999999999999999 0.5 0 0 0 0 0 0 1 1 1 1 0", "radius"),
		Entry("count beyond int range", "99999999999999999999 0.5 0 0 0 0 0 0 1 1 1 1 0", "count"),
		Entry("trailing tokens", "1\n0.5 0 0 0 0 0 0 1 1 1 1 0 extra", "end"),
	)

	It("reports the failing body index", func() {
		_, err := scene.Parse(strings.NewReader("2\n0.5 0 0 0 0 0 0 1 1 1 1 0\n-1 0 0 0 0 0 0 1 1 1 1 0"), dt)
		var pe *scene.ParseError
		Expect(errors.As(err, &pe)).To(BeTrue())
		Expect(pe.Body).To(Equal(1))
		Expect(pe.Error()).To(ContainSubstring("body 1"))
	})
})

var _ = Describe("Write", func() {
	It("round trips through Parse", func() {
		in, err := scene.Parse(strings.NewReader(twoBodies), dt)
		Expect(err).NotTo(HaveOccurred())

		var buf bytes.Buffer
		Expect(scene.Write(&buf, in, dt)).To(Succeed())

		out, err := scene.Parse(&buf, dt)
		Expect(err).NotTo(HaveOccurred())
		Expect(out).To(HaveLen(len(in)))
		for i := range in {
			a, b := in[i].Body, out[i].Body
			Expect(b.Position).To(Equal(a.Position))
			Expect(b.Radius).To(Equal(a.Radius))
			Expect(b.Density).To(Equal(a.Density))
			Expect(b.PositionPrev.Sub(a.PositionPrev).Len()).To(BeNumerically("<", 1e-12))
			Expect(out[i].Look).To(Equal(in[i].Look))
		}
	})
})

var _ = Describe("LoadFile", func() {
	It("wraps open failures", func() {
		_, err := scene.LoadFile(filepath.Join(GinkgoT().TempDir(), "missing.txt"), dt)
		Expect(err).To(MatchError(os.ErrNotExist))
	})

	It("names the file on parse failures", func() {
		path := filepath.Join(GinkgoT().TempDir(), "bad.txt")
		Expect(os.WriteFile(path, []byte("1\n0.5"), 0644)).To(Succeed())

		_, err := scene.LoadFile(path, dt)
		Expect(err).To(MatchError(scene.ErrMalformedScene))
		Expect(err.Error()).To(ContainSubstring("bad.txt"))
	})
})

var _ = Describe("premade scenes", func() {
	It("lists the embedded scenes in order", func() {
		Expect(scene.PremadeNames()).To(Equal([]string{"binary", "cluster", "headon", "newton", "solar"}))
	})

	It("parses every embedded scene", func() {
		for _, name := range scene.PremadeNames() {
			es, err := scene.Premade(name, dt)
			Expect(err).NotTo(HaveOccurred(), name)
			Expect(es).NotTo(BeEmpty(), name)
		}
	})

	It("rejects unknown names", func() {
		_, err := scene.Premade("nope", dt)
		Expect(err).To(MatchError(scene.ErrUnknownScene))
	})

	It("resolves names before paths", func() {
		es, err := scene.Resolve("solar", dt)
		Expect(err).NotTo(HaveOccurred())
		Expect(es).To(HaveLen(4))
		Expect(es[0].Look.Light).To(BeTrue())
	})
})
