package control_test

import (
	"errors"

	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"

	"github.com/san-kum/fractalview/internal/control"
	"github.com/san-kum/fractalview/internal/escape"
	"github.com/san-kum/fractalview/internal/metrics"
	"github.com/san-kum/fractalview/internal/palette"
	"github.com/san-kum/fractalview/internal/render"
	"github.com/san-kum/fractalview/internal/viewport"
)

type recordingSink struct {
	frames []*render.Frame
	err    error
}

func (s *recordingSink) Display(f *render.Frame) error {
	s.frames = append(s.frames, f)
	return s.err
}

type unknownEvent struct{}

func (unknownEvent) Kind() string { return "unknown" }

func mandelbrotScene(w, h int, minSpan float64) control.Scene {
	vp, err := viewport.New(w, h, -3.0, -2.0, viewport.DefaultRealSpan, viewport.DefaultZoomGranularity)
	Expect(err).NotTo(HaveOccurred())
	vp.MinSpan = minSpan
	return control.Scene{
		Viewport: *vp,
		Params:   escape.NewMandelbrot(40),
		Palette:  palette.Mandelbrot,
	}
}

func juliaScene(w, h int) control.Scene {
	vp, err := viewport.New(w, h, -2.0, -1.5, viewport.DefaultRealSpan, viewport.DefaultZoomGranularity)
	Expect(err).NotTo(HaveOccurred())
	return control.Scene{
		Viewport: *vp,
		Params:   escape.NewJulia(escape.DefaultJuliaConstant, 40),
		Palette:  palette.Julia,
	}
}

var _ = Describe("Controller", func() {
	var (
		sink *recordingSink
		ctrl *control.Controller
	)

	BeforeEach(func() {
		sink = &recordingSink{}
		ctrl = control.New(mandelbrotScene(32, 18, 0), render.New(1), sink)
	})

	Describe("Refresh", func() {
		It("renders the initial viewport once", func() {
			frame, err := ctrl.Refresh()
			Expect(err).NotTo(HaveOccurred())
			Expect(sink.frames).To(HaveLen(1))
			Expect(frame.Width).To(Equal(32))
			Expect(frame.Height).To(Equal(18))
			Expect(ctrl.Frame()).To(BeIdenticalTo(frame))
		})
	})

	Describe("PointerPressed", func() {
		It("does not move the origin when pressing the exact center", func() {
			before := ctrl.Viewport()
			_, err := ctrl.Dispatch(control.PointerPressed{X: 16, Y: 9})
			Expect(err).NotTo(HaveOccurred())
			after := ctrl.Viewport()
			Expect(after.RealOrigin).To(Equal(before.RealOrigin))
			Expect(after.ImagOrigin).To(Equal(before.ImagOrigin))
		})

		It("moves the pressed point to the center and renders once", func() {
			target := ctrl.Viewport()
			point := target.Point(4, 3)

			frame, err := ctrl.Dispatch(control.PointerPressed{X: 4, Y: 3})
			Expect(err).NotTo(HaveOccurred())
			Expect(frame).NotTo(BeNil())
			Expect(sink.frames).To(HaveLen(1))

			vp := ctrl.Viewport()
			Expect(real(vp.Center())).To(BeNumerically("~", real(point), 1e-12))
			Expect(imag(vp.Center())).To(BeNumerically("~", imag(point), 1e-12))
		})
	})

	Describe("ScrollWheel", func() {
		It("ignores a zero delta without rendering", func() {
			before := ctrl.Viewport()
			frame, err := ctrl.Dispatch(control.ScrollWheel{Delta: 0})
			Expect(err).NotTo(HaveOccurred())
			Expect(frame).To(BeNil())
			Expect(sink.frames).To(BeEmpty())
			Expect(ctrl.Viewport()).To(Equal(before))
			Expect(ctrl.History()).To(BeEmpty())
		})

		It("narrows the span when scrolling forward", func() {
			_, err := ctrl.Dispatch(control.ScrollWheel{Delta: 1})
			Expect(err).NotTo(HaveOccurred())
			Expect(ctrl.Viewport().RealSpan).To(BeNumerically("~", 4.05, 1e-12))
			Expect(ctrl.Magnification()).To(BeNumerically(">", 1))
		})

		It("keeps frame dimensions across zoom and pan", func() {
			events := []control.Event{
				control.ScrollWheel{Delta: 3},
				control.PointerPressed{X: 2, Y: 15},
				control.ScrollWheel{Delta: -1},
				control.PointerPressed{X: 30, Y: 1},
			}
			for _, ev := range events {
				frame, err := ctrl.Dispatch(ev)
				Expect(err).NotTo(HaveOccurred())
				Expect(frame.Width).To(Equal(32))
				Expect(frame.Height).To(Equal(18))
				Expect(frame.Image.Bounds().Dx()).To(Equal(32))
				Expect(frame.Image.Bounds().Dy()).To(Equal(18))
			}
			Expect(sink.frames).To(HaveLen(len(events)))
		})

		It("refuses zooms past the minimum span when one is set", func() {
			ctrl = control.New(mandelbrotScene(32, 18, 1.0), render.New(1), sink)
			frame, err := ctrl.Dispatch(control.ScrollWheel{Delta: 9})
			Expect(err).NotTo(HaveOccurred())
			Expect(frame).To(BeNil())
			Expect(ctrl.Viewport().RealSpan).To(Equal(viewport.DefaultRealSpan))
		})

		It("lets the span collapse when unguarded", func() {
			_, err := ctrl.Dispatch(control.ScrollWheel{Delta: 10})
			Expect(err).NotTo(HaveOccurred())
			vp := ctrl.Viewport()
			Expect(vp.Degenerate()).To(BeTrue())
		})
	})

	Describe("ResetView", func() {
		It("restores the initial viewport", func() {
			initial := ctrl.Viewport()
			ctrl.Dispatch(control.ScrollWheel{Delta: 4})
			ctrl.Dispatch(control.PointerPressed{X: 1, Y: 1})

			_, err := ctrl.Reset()
			Expect(err).NotTo(HaveOccurred())
			Expect(ctrl.Viewport()).To(Equal(initial))
		})
	})

	Describe("SwitchVariant", func() {
		It("fails for a variant with no scene", func() {
			_, err := ctrl.Dispatch(control.SwitchVariant{Variant: escape.Julia})
			Expect(errors.Is(err, control.ErrUnknownScene)).To(BeTrue())
		})

		It("toggles between registered scenes", func() {
			ctrl = control.New(mandelbrotScene(32, 18, 0), render.New(1), sink,
				control.WithScene(juliaScene(32, 18)))

			_, err := ctrl.Toggle()
			Expect(err).NotTo(HaveOccurred())
			Expect(ctrl.Variant()).To(Equal(escape.Julia))
			Expect(ctrl.Palette().Name).To(Equal(palette.Julia.Name))
			Expect(ctrl.Viewport().RealOrigin).To(Equal(-2.0))

			_, err = ctrl.Toggle()
			Expect(err).NotTo(HaveOccurred())
			Expect(ctrl.Variant()).To(Equal(escape.Mandelbrot))
		})

		It("does nothing when only one scene exists", func() {
			frame, err := ctrl.Toggle()
			Expect(err).NotTo(HaveOccurred())
			Expect(frame).To(BeNil())
		})
	})

	Describe("errors", func() {
		It("rejects unknown events", func() {
			_, err := ctrl.Dispatch(unknownEvent{})
			Expect(errors.Is(err, control.ErrUnknownEvent)).To(BeTrue())
			Expect(sink.frames).To(BeEmpty())
		})

		It("wraps sink failures", func() {
			sink.err = errors.New("closed")
			frame, err := ctrl.Dispatch(control.PointerPressed{X: 0, Y: 0})
			Expect(errors.Is(err, control.ErrSink)).To(BeTrue())
			Expect(frame).NotTo(BeNil())
		})
	})

	Describe("observers", func() {
		It("observes every rendered frame", func() {
			inside := metrics.NewInsideRatio()
			ctrl = control.New(mandelbrotScene(32, 18, 0), render.New(1), sink,
				control.WithMetrics(inside))

			ctrl.Refresh()
			Expect(inside.Value()).To(BeNumerically(">", 0))
			Expect(ctrl.Metrics()).To(ConsistOf(inside))
		})
	})

	Describe("history", func() {
		It("records applied events in order", func() {
			ctrl.Dispatch(control.ScrollWheel{Delta: 2})
			ctrl.Dispatch(control.ScrollWheel{Delta: 0})
			ctrl.Dispatch(control.PointerPressed{X: 3, Y: 4})

			history := ctrl.History()
			Expect(history).To(HaveLen(2))
			Expect(history[0].Seq).To(Equal(1))
			Expect(history[0].Event).To(Equal(control.ScrollWheel{Delta: 2}))
			Expect(history[1].Event).To(Equal(control.PointerPressed{X: 3, Y: 4}))
			Expect(history[1].Viewport).To(Equal(ctrl.Viewport()))
			Expect(ctrl.Events()).To(HaveLen(2))
		})
	})
})
