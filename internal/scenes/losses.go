package scenes

import (
	"fmt"
	"math"

	"github.com/san-kum/mlscenes/internal/anim"
	"github.com/san-kum/mlscenes/internal/regress"
)

// BestEpoch is roughly where validation loss bottoms out.
const BestEpoch = 40

func TrainingLoss(x float64) float64 {
	return 0.8*math.Exp(-0.03*x) + 0.05
}

func ValidationLoss(x float64) float64 {
	return 0.8*math.Exp(-0.025*x) + 0.1 + 0.001*math.Pow(math.Max(0, x-BestEpoch), 1.5)
}

// LossAnimation sweeps an epoch marker across training and validation loss
// curves, then shades the region where the model overfits.
func LossAnimation(s *anim.Scene) error {
	axes := anim.NewAxes(anim.AxesConfig{
		X:       anim.R(0, 100, 20),
		Y:       anim.R(0, 1, 0.2),
		XLength: 10,
		YLength: 6,
		Tips:    true,
	})
	xLabel, yLabel := axisLabels(axes, "Epochs", "Loss", 30)

	trainCurve := axes.Plot(TrainingLoss, 0, 100, anim.Blue)
	valCurve := axes.Plot(ValidationLoss, 0, 100, anim.Red)

	trainLabel := anim.ColoredText("Training Loss", 24, anim.Blue).
		NextToPoint(axes.C2P(95, TrainingLoss(95)), anim.UR)
	valLabel := anim.ColoredText("Validation Loss", 24, anim.Red).
		NextToPoint(axes.C2P(95, ValidationLoss(95)), anim.DR)

	epochs := regress.Linspace(0, 100, 101)
	s.Record("training loss", epochs, regress.Apply(epochs, TrainingLoss))
	s.Record("validation loss", epochs, regress.Apply(epochs, ValidationLoss))

	tracker := anim.NewTracker(0)
	marker := anim.AlwaysRedraw(func() *anim.Mobject {
		return axes.VerticalLine(axes.InputToGraphPoint(tracker.Value(), TrainingLoss)).SetColor(anim.Yellow)
	})
	counter := anim.AlwaysRedraw(func() *anim.Mobject {
		return anim.Text(fmt.Sprintf("Epoch: %d", int(tracker.Value())), 36).ToEdge(s.Frame(), anim.Up)
	})

	s.Add(axes.Mobject, anim.Group(xLabel, yLabel), trainCurve, valCurve, trainLabel, valLabel, marker, counter)
	s.Play(tracker.AnimateTo(100)).RunTime(8).Rate(anim.Linear)

	zone := overfittingZone(axes)
	zoneLabel := anim.ColoredText("Overfitting", 36, anim.Red).MoveTo(axes.C2P(85, 0.3))

	s.Play(anim.FadeIn(zone), anim.Write(zoneLabel))
	s.Wait(3)
	return nil
}

// overfittingZone is the area under the validation curve from BestEpoch on.
func overfittingZone(axes *anim.Axes) *anim.Mobject {
	xs := regress.Linspace(BestEpoch, 100, 100)
	verts := make([]anim.Vec, 0, 2*len(xs))
	for _, x := range xs {
		verts = append(verts, axes.C2P(x, ValidationLoss(x)))
	}
	for i := len(xs) - 1; i >= 0; i-- {
		verts = append(verts, axes.C2P(xs[i], 0))
	}
	zone := anim.Polygon(verts, anim.RedA).SetFill(anim.RedA, 0.3)
	zone.StrokeWidth = 0
	return zone
}
