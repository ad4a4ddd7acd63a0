package scenes

import (
	"math"

	"github.com/san-kum/mlscenes/internal/anim"
	"github.com/san-kum/mlscenes/internal/regress"
)

// RegularizationExplanation walks through overfitting, the regularized loss,
// L2 and L1 penalties and a comparison of both.
func RegularizationExplanation(s *anim.Scene) error {
	e := &explainer{s: s, frame: s.Frame()}
	e.introduction()
	e.overfitting()
	e.regularizedLoss()
	e.penalty(penaltySection{
		title:    "L2 Regularization (Ridge)",
		equation: "L_L2(θ) = L(θ) + λ∑θj²",
		penalty:  "Penalty_L2(θ) = ∑θj²",
		effects: []string{
			"• Shrinks all coefficients toward zero",
			"• Larger penalties for larger coefficients",
			"• Helps with multicollinearity",
			"• Typically improves generalization",
		},
	})
	e.penalty(penaltySection{
		title:    "L1 Regularization (Lasso)",
		equation: "L_L1(θ) = L(θ) + λ∑|θj|",
		penalty:  "Penalty_L1(θ) = ∑|θj|",
		effects: []string{
			"• Can reduce coefficients to exactly zero",
			"• Performs feature selection",
			"• Creates sparse models",
			"• Robust to outliers",
		},
	})
	e.compare()
	e.conclusion()
	return nil
}

type explainer struct {
	s     *anim.Scene
	frame anim.Box
}

func (e *explainer) title(text string) *anim.Mobject {
	t := anim.Text(text, 36).ToEdge(e.frame, anim.Up)
	e.s.Play(anim.Write(t))
	return t
}

// list stacks lines downwards, left aligned.
func list(lines []string, fontSize, buff float64) *anim.Mobject {
	g := anim.Group()
	for _, l := range lines {
		g.Add(anim.Text(l, fontSize))
	}
	return g.Arrange(anim.Down, anim.Left, buff)
}

func (e *explainer) introduction() {
	s := e.s
	title := anim.Text("Regularization in Machine Learning", 40).ToEdge(e.frame, anim.Up)
	subtitle := anim.Text("A Step-by-Step Explanation", 30).NextTo(title, anim.Down)

	s.Play(anim.Write(title)).RunTime(1.5)
	s.Play(anim.FadeIn(subtitle)).RunTime(1)
	s.Wait(2)

	whatIs := anim.Text("What is Regularization?", 36)
	definition := anim.Text(
		"Regularization is a technique to prevent overfitting\n"+
			"by adding a penalty term to the loss function.",
		24,
	).WithLineSpacing(1.5).NextToBuff(whatIs, anim.Down, 0.5)

	s.Play(anim.FadeOut(subtitle), anim.Transform(title, whatIs))
	s.Play(anim.Write(definition)).RunTime(2)
	s.Wait(3)

	s.Play(anim.FadeOut(definition), anim.FadeOut(title))
}

func complexModel(x float64) float64 {
	return 0.5*x + 0.3*math.Sin(5*x) + 0.2*math.Cos(3*x)
}

func l2Model(x float64) float64 {
	return 0.48*x + 0.12*math.Sin(5*x) + 0.08*math.Cos(3*x)
}

func l1Model(x float64) float64 {
	return 0.45*x + 0.05*math.Sin(5*x)
}

// NoisyLineData is 12 points of 0.5x plus N(0, 0.3) noise on [-2.5, 2.5].
func NoisyLineData() (xs, ys []float64) {
	xs = regress.Linspace(-2.5, 2.5, 12)
	ys = regress.NoisySamples(xs, func(x float64) float64 { return 0.5 * x }, 0.3, 42)
	return xs, ys
}

// dataAxes draws the shared axes of the overfitting and comparison sections.
func (e *explainer) dataAxes() (*anim.Axes, *anim.Mobject, *anim.Mobject) {
	axes := anim.NewAxes(anim.AxesConfig{
		X:       anim.R(-3, 3, 1),
		Y:       anim.R(-2, 2, 1),
		XLength: 10,
		YLength: 6,
	})
	axes.Shift(anim.Down.Mul(0.5))
	xLabel, yLabel := axisLabels(axes, "x", "y", 24)
	e.s.Play(anim.Create(axes.Mobject), anim.Write(xLabel), anim.Write(yLabel))
	return axes, xLabel, yLabel
}

func (e *explainer) overfitting() {
	s := e.s
	title := e.title("The Problem: Overfitting")
	axes, xLabel, yLabel := e.dataAxes()

	xs, ys := NoisyLineData()
	s.Record("training data", xs, ys)
	dots := scatter(axes, xs, ys, 0.08, anim.Blue)
	dataLabel := anim.ColoredText("Training Data", 24, anim.Blue).
		NextTo(axes.Mobject, anim.Up).Shift(anim.Left.Mul(3))

	s.Play(anim.FadeIn(dots), anim.Write(dataLabel))
	s.Wait(1)

	linear := axes.Plot(func(x float64) float64 { return 0.5 * x }, -3, 3, anim.Green)
	linearLabel := anim.ColoredText("Simple Model", 24, anim.Green).
		NextTo(axes.Mobject, anim.Up).Shift(anim.Right.Mul(3))
	s.Play(anim.Create(linear), anim.Write(linearLabel))
	s.Wait(2)

	complexCurve := axes.Plot(complexModel, -3, 3, anim.Red)
	complexLabel := anim.ColoredText("Complex Model (Overfitting)", 24, anim.Red).NextTo(linearLabel, anim.Down)
	s.Play(anim.Create(complexCurve), anim.Write(complexLabel))
	s.Wait(2)

	box := anim.Rectangle(6, 3, anim.Yellow).SetFill(anim.Yellow, 0.2).ToEdge(e.frame, anim.Down)
	text := anim.Text(
		"Overfitting: Model learns noise in the data\n"+
			"rather than the underlying pattern.\n"+
			"Performs well on training data but poorly on new data.",
		20,
	).WithLineSpacing(1.2).MoveTo(box.GetCenter())
	s.Play(anim.Create(box), anim.Write(text))
	s.Wait(3)

	s.Play(fadeOutAll(
		box, text, dots, linear, complexCurve, linearLabel, complexLabel,
		dataLabel, axes.Mobject, xLabel, yLabel, title,
	)...)
}

// lambdaGlyph is the index of λ among the visible glyphs of the regularized
// loss equation.
const lambdaGlyph = 13

func (e *explainer) regularizedLoss() {
	s := e.s
	title := e.title("Introducing Regularization")

	lossText := anim.Text("Standard Loss:", 28).Shift(anim.Up.Mul(1.5))
	lossEq := anim.Text("L(θ) = (1/n)∑(yi - ŷi)²", 32).NextTo(lossText, anim.Down)
	lossNote := anim.ColoredText("Mean Squared Error", 20, anim.Gray).NextTo(lossEq, anim.Down)

	regText := anim.Text("Regularized Loss:", 28).Shift(anim.Down.Mul(1))
	regEq := anim.Text("Lreg(θ) = L(θ) + λ · Penalty(θ)", 32).NextTo(regText, anim.Down)
	regNote := anim.ColoredText("Loss + Regularization Term", 20, anim.Gray).NextTo(regEq, anim.Down)

	equations := anim.Group(lossText, lossEq, lossNote, regText, regEq, regNote)

	s.Play(anim.Write(lossText))
	s.Play(anim.Write(lossEq), anim.Write(lossNote))
	s.Wait(2)

	s.Play(anim.Write(regText))
	s.Play(anim.Write(regEq), anim.Write(regNote))
	s.Wait(2)

	highlight := anim.SurroundingRectangle(regEq.GlyphBox(lambdaGlyph, lambdaGlyph+1), anim.Yellow, anim.SmallBuff)
	lambdaText := anim.ColoredText("Regularization Strength (λ)", 20, anim.Yellow).NextTo(highlight, anim.Down)
	s.Play(anim.Create(highlight), anim.Write(lambdaText))
	s.Wait(2)

	s.Play(anim.FadeOut(equations), anim.FadeOut(highlight), anim.FadeOut(lambdaText))

	types := anim.Group(
		anim.Text("Types of Regularization:", 32),
		anim.Text("1. L1 Regularization (Lasso)", 28),
		anim.Text("2. L2 Regularization (Ridge)", 28),
		anim.Text("3. Elastic Net (Combination of L1 and L2)", 28),
	).Arrange(anim.Down, anim.Left, 0.5).Shift(anim.Down.Mul(0.5))

	s.Play(anim.Write(types.Child(0)))
	s.Wait(1)
	for i := 1; i < 4; i++ {
		s.Play(anim.FadeIn(types.Child(i)))
		s.Wait(1)
	}
	s.Wait(2)
	s.Play(anim.FadeOut(types), anim.FadeOut(title))
}

type penaltySection struct {
	title    string
	equation string
	penalty  string
	effects  []string
}

func (e *explainer) penalty(p penaltySection) {
	s := e.s
	title := e.title(p.title)

	eq := anim.Text(p.equation, 32).Shift(anim.Up.Mul(1.5))
	penalty := anim.Text(p.penalty, 28).NextToBuff(eq, anim.Down, 0.5)
	s.Play(anim.Write(eq))
	s.Wait(1)
	s.Play(anim.Write(penalty))
	s.Wait(2)

	effectsTitle := anim.Text("Effects:", 30).Shift(anim.Down.Mul(0.2))
	effects := list(p.effects, 24, 0.3).NextToBuff(effectsTitle, anim.Down, 0.3)

	s.Play(anim.Write(effectsTitle))
	for _, effect := range effects.Children {
		s.Play(anim.FadeIn(effect))
		s.Wait(0.7)
	}
	s.Wait(2)
	s.Play(fadeOutAll(eq, penalty, effectsTitle, effects, title)...)
}

func (e *explainer) compare() {
	s := e.s
	title := e.title("Comparing Regularization Methods")
	axes, xLabel, yLabel := e.dataAxes()

	xs, ys := NoisyLineData()
	dots := scatter(axes, xs, ys, 0.08, anim.Blue)
	dataLabel := anim.ColoredText("Data Points", 20, anim.Blue).
		ToEdge(e.frame, anim.Right).Shift(anim.Up.Mul(2))
	s.Play(anim.FadeIn(dots), anim.Write(dataLabel))

	grid := regress.Linspace(-3, 3, 61)
	s.Record("complex model", grid, regress.Apply(grid, complexModel))
	s.Record("l2 model", grid, regress.Apply(grid, l2Model))
	s.Record("l1 model", grid, regress.Apply(grid, l1Model))

	overfit := axes.Plot(complexModel, -3, 3, anim.Red)
	overfitLabel := anim.ColoredText("Overfitted Model", 20, anim.Red).NextTo(dataLabel, anim.Down)
	s.Play(anim.Create(overfit), anim.Write(overfitLabel))
	s.Wait(1.5)

	l2 := axes.Plot(l2Model, -3, 3, anim.Green)
	l2Label := anim.ColoredText("L2 Regularization", 20, anim.Green).NextTo(overfitLabel, anim.Down)
	s.Play(anim.Create(l2), anim.Write(l2Label))
	s.Wait(1.5)

	l1 := axes.Plot(l1Model, -3, 3, anim.Yellow)
	l1Label := anim.ColoredText("L1 Regularization", 20, anim.Yellow).NextTo(l2Label, anim.Down)
	s.Play(anim.Create(l1), anim.Write(l1Label))
	s.Wait(2)

	box := anim.Rectangle(6, 3, anim.White).SetFill(anim.White, 0.1).ToEdge(e.frame, anim.Left)
	comparison := anim.Group(
		anim.Text("Comparison:", 24),
		anim.Text("• L2: Shrinks all coefficients", 20),
		anim.Text("• L1: Creates sparse models", 20),
		anim.Text("• Both: Prevent overfitting", 20),
	).Arrange(anim.Down, anim.Left, 0.3).MoveTo(box.GetCenter())

	s.Play(anim.Create(box), anim.Write(comparison.Child(0)))
	for i := 1; i < 4; i++ {
		s.Play(anim.FadeIn(comparison.Child(i)))
		s.Wait(0.7)
	}
	s.Wait(3)

	s.Play(fadeOutAll(
		box, comparison, dots, overfit, l2, l1, dataLabel, overfitLabel,
		l2Label, l1Label, axes.Mobject, xLabel, yLabel, title,
	)...)
}

func (e *explainer) conclusion() {
	s := e.s
	title := e.title("Key Takeaways")

	takeaways := list([]string{
		"1. Regularization prevents overfitting",
		"2. L1 (Lasso): Creates sparse models",
		"3. L2 (Ridge): Shrinks all coefficients",
		"4. The λ parameter controls regularization strength",
		"5. Start with a small λ and increase gradually",
	}, 28, 0.5).Shift(anim.Down.Mul(0.5))

	for _, t := range takeaways.Children {
		s.Play(anim.FadeIn(t))
		s.Wait(1)
	}
	s.Wait(2)

	thanks := anim.ColoredText("Thank you for watching!", 40, anim.Blue).Shift(anim.Down.Mul(3))
	s.Play(anim.Write(thanks))
	s.Wait(3)

	s.Play(anim.FadeOut(title), anim.FadeOut(takeaways), anim.FadeOut(thanks))
}
