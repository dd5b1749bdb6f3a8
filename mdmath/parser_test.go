package mdmath_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jcorbin/mdstream/mdmath"
)

func TestParse_Symbols(t *testing.T) {
	n := mdmath.Parse("x")
	require.Equal(t, mdmath.Sequence, n.Kind)
	require.Len(t, n.Children, 1)
	assert.Equal(t, mdmath.Symbol, n.Children[0].Kind)
	assert.Equal(t, "x", n.Children[0].Value)
}

func TestParse_Frac(t *testing.T) {
	n := mdmath.Parse(`\frac{1}{2}`)
	require.Len(t, n.Children, 1)
	frac := n.Children[0]
	require.Equal(t, mdmath.Fraction, frac.Kind)
	require.Len(t, frac.Num.Children, 1)
	assert.Equal(t, "1", frac.Num.Children[0].Value)
	require.Len(t, frac.Den.Children, 1)
	assert.Equal(t, "2", frac.Den.Children[0].Value)
}

func TestParse_Scripts(t *testing.T) {
	n := mdmath.Parse(`x^2_i`)
	require.Len(t, n.Children, 1)
	sc := n.Children[0]
	require.Equal(t, mdmath.Scripts, sc.Kind)
	assert.Equal(t, "x", sc.Base.Value)
	require.NotNil(t, sc.Sup)
	assert.Equal(t, "2", sc.Sup.Value)
	require.NotNil(t, sc.Sub)
	assert.Equal(t, "i", sc.Sub.Value)
}

func TestParse_ScriptsEitherOrder(t *testing.T) {
	n := mdmath.Parse(`x_i^2`)
	sc := n.Children[0]
	require.Equal(t, mdmath.Scripts, sc.Kind)
	require.NotNil(t, sc.Sup)
	assert.Equal(t, "2", sc.Sup.Value)
	require.NotNil(t, sc.Sub)
	assert.Equal(t, "i", sc.Sub.Value)
}

func TestParse_Sqrt(t *testing.T) {
	n := mdmath.Parse(`\sqrt[3]{x}`)
	sq := n.Children[0]
	require.Equal(t, mdmath.Sqrt, sq.Kind)
	require.NotNil(t, sq.Index)
	assert.Equal(t, "3", sq.Index.Children[0].Value)
	assert.Equal(t, "x", sq.Radicand.Children[0].Value)
}

func TestParse_Binom(t *testing.T) {
	n := mdmath.Parse(`\binom{n}{k}`)
	b := n.Children[0]
	require.Equal(t, mdmath.Binomial, b.Kind)
	assert.Equal(t, "n", b.Num.Children[0].Value)
	assert.Equal(t, "k", b.Den.Children[0].Value)
}

func TestParse_Text(t *testing.T) {
	n := mdmath.Parse(`\text{hello world}`)
	txt := n.Children[0]
	require.Equal(t, mdmath.Text, txt.Kind)
	assert.Equal(t, "hello world", txt.Value)
}

func TestParse_LeftRight(t *testing.T) {
	n := mdmath.Parse(`\left( x \right)`)
	d := n.Children[0]
	require.Equal(t, mdmath.Delimiter, d.Kind)
	assert.Equal(t, "(", d.Left)
	assert.Equal(t, ")", d.Right)
	require.Len(t, d.Body.Children, 1)
	assert.Equal(t, "x", d.Body.Children[0].Value)
}

func TestParse_Matrix(t *testing.T) {
	n := mdmath.Parse(`\begin{pmatrix} a & b \\ c & d \end{pmatrix}`)
	m := n.Children[0]
	require.Equal(t, mdmath.Matrix, m.Kind)
	assert.Equal(t, mdmath.EnvPMatrix, m.Env)
	require.Len(t, m.Rows, 2)
	require.Len(t, m.Rows[0], 2)
	assert.Equal(t, "a", m.Rows[0][0].Children[0].Value)
	assert.Equal(t, "d", m.Rows[1][1].Children[0].Value)
}

func TestParse_Accent(t *testing.T) {
	n := mdmath.Parse(`\hat{x}`)
	a := n.Children[0]
	require.Equal(t, mdmath.Accent, a.Kind)
	assert.Equal(t, mdmath.AccentHat, a.AccentKind)
	assert.Equal(t, "x", a.Body.Children[0].Value)
}

func TestParse_Styled(t *testing.T) {
	n := mdmath.Parse(`\mathbf{v}`)
	sym := n.Children[0].Children[0]
	assert.Equal(t, mdmath.Symbol, sym.Kind)
	assert.Equal(t, mdmath.StyleBold, sym.Style)
}

func TestParse_GreekAndOperators(t *testing.T) {
	n := mdmath.Parse(`\alpha \leq \beta`)
	require.Len(t, n.Children, 3)
	assert.Equal(t, mdmath.Symbol, n.Children[0].Kind)
	assert.Equal(t, `\alpha`, n.Children[0].Value)
	assert.Equal(t, mdmath.Operator, n.Children[1].Kind)
	assert.Equal(t, `\leq`, n.Children[1].Value)
}

func TestParse_BigOperatorAndFunction(t *testing.T) {
	n := mdmath.Parse(`\sum \sin x`)
	require.Len(t, n.Children, 3)
	assert.Equal(t, mdmath.Operator, n.Children[0].Kind)
	assert.Equal(t, mdmath.Function, n.Children[1].Kind)
	assert.Equal(t, "sin", n.Children[1].Value)
}

func TestParse_Spacing(t *testing.T) {
	n := mdmath.Parse(`a\,b\;c\quad d`)
	require.Len(t, n.Children, 7)
	assert.Equal(t, mdmath.Spacing, n.Children[1].Kind)
	assert.Equal(t, mdmath.SpacingThin, n.Children[1].Space)
	assert.Equal(t, mdmath.SpacingMedium, n.Children[3].Space)
	assert.Equal(t, mdmath.SpacingQuad, n.Children[5].Space)
}

func TestParse_ErrorRecoversToText(t *testing.T) {
	n := mdmath.Parse(`\frac{1}`) // missing denominator group
	assert.Equal(t, mdmath.Text, n.Kind)
	assert.Equal(t, `\frac{1}`, n.Value)
}

func TestParse_UnknownCommandRecoversToText(t *testing.T) {
	n := mdmath.Parse(`\totallyunknowncommand`)
	assert.Equal(t, mdmath.Text, n.Kind)
}

func TestParse_CommentConsumedToEndOfLine(t *testing.T) {
	n := mdmath.Parse("a \\% a comment\nb")
	require.Len(t, n.Children, 2)
	assert.Equal(t, "a", n.Children[0].Value)
	assert.Equal(t, "b", n.Children[1].Value)
}

func TestTypeset_Smoke(t *testing.T) {
	for _, src := range []string{
		"x", `\frac{1}{2}`, `x^2_i`, `\sqrt[3]{x}`, `\binom{n}{k}`,
		`\text{hi}`, `\left(x\right)`, `\begin{matrix}a&b\\c&d\end{matrix}`,
		`\hat{x}`, `a\,b`, `\begin{cases}1&x>0\\0&x\leq 0\end{cases}`,
	} {
		n := mdmath.Parse(src)
		box := mdmath.Typeset(n)
		assert.GreaterOrEqual(t, box.Width, 0.0, "src=%q", src)
	}
}
