package ownership_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/recolon-lang/recolon/internal/ownership"
	"github.com/recolon-lang/recolon/internal/parser"
)

func analyze(t *testing.T, src string) error {
	t.Helper()
	prog, err := parser.Parse(src)
	require.NoError(t, err, "source must parse")
	_, err = ownership.Analyze(prog)
	return err
}

func firstError(t *testing.T, err error) *ownership.Error {
	t.Helper()
	el, ok := err.(ownership.ErrorList)
	require.True(t, ok, "expected ownership.ErrorList, got %T", err)
	require.NotEmpty(t, el)
	return el[0]
}

func TestUseAfterMove(t *testing.T) {
	err := analyze(t, `
var a = [1, 2, 3];
var b = a;
log(a);
`)
	require.Error(t, err)
	e := firstError(t, err)
	assert.Equal(t, ownership.UseAfterMove, e.Kind)
	assert.Contains(t, e.Message, `"a"`)
	assert.Equal(t, 4, e.Pos.Line)
}

func TestValueTypesCopy(t *testing.T) {
	err := analyze(t, `
var a = 1;
var b = a;
log(a);
var s = "text";
var u = s;
log(s);
`)
	assert.NoError(t, err)
}

func TestMoveIntoFunctionCall(t *testing.T) {
	err := analyze(t, `
fn consume(xs) { log(xs); }
var a = [1, 2];
consume(a);
log(a);
`)
	require.Error(t, err)
	assert.Equal(t, ownership.UseAfterMove, firstError(t, err).Kind)
}

func TestLogBorrowsWithoutMoving(t *testing.T) {
	err := analyze(t, `
var a = [1, 2];
log(a);
log(a);
`)
	assert.NoError(t, err)
}

func TestMethodCallBorrowsReceiver(t *testing.T) {
	err := analyze(t, `
var a = [1, 2];
log(math.min(1, 2));
log(a);
`)
	assert.NoError(t, err)
}

func TestMoveIntoArrayLiteral(t *testing.T) {
	err := analyze(t, `
var a = [1];
var nested = [a];
log(a);
`)
	require.Error(t, err)
	assert.Equal(t, ownership.UseAfterMove, firstError(t, err).Kind)
}

func TestInstanceMoves(t *testing.T) {
	err := analyze(t, `
struct Point { x = 0; }
var p = Point();
var q = p;
log(p);
`)
	require.Error(t, err)
	assert.Equal(t, ownership.UseAfterMove, firstError(t, err).Kind)
}

func TestFreshDeclarationRestoresOwnership(t *testing.T) {
	err := analyze(t, `
var a = [1];
var b = a;
var a = [2];
log(a);
`)
	assert.NoError(t, err)
}

func TestAssignmentDoesNotUnmove(t *testing.T) {
	// Only a fresh declaration returns a binding to Owned.
	err := analyze(t, `
var a = [1];
var b = a;
a = [2];
log(a);
`)
	require.Error(t, err)
	assert.Equal(t, ownership.UseAfterMove, firstError(t, err).Kind)
}

func TestBranchJoinConservative(t *testing.T) {
	// Moved on one branch only is still moved after the join.
	err := analyze(t, `
var a = [1];
if (cond) {
	var b = a;
} else {
	log(1);
}
log(a);
`)
	require.Error(t, err)
	assert.Equal(t, ownership.UseAfterMove, firstError(t, err).Kind)
}

func TestBranchJoinBothClean(t *testing.T) {
	err := analyze(t, `
var a = [1];
if (cond) {
	log(a);
} else {
	log(a);
}
log(a);
`)
	assert.NoError(t, err)
}

func TestBranchUseBeforeMoveInSameBranch(t *testing.T) {
	err := analyze(t, `
var a = [1];
if (cond) {
	log(a);
	var b = a;
}
`)
	assert.NoError(t, err)
}

func TestLoopBodyMoveDetectedOnSecondPass(t *testing.T) {
	// The move happens on iteration n; the read at the top of the body
	// fails on iteration n+1.
	err := analyze(t, `
var a = [1];
while (running) {
	var b = a;
}
`)
	require.Error(t, err)
	assert.Equal(t, ownership.UseAfterMove, firstError(t, err).Kind)
}

func TestLoopDuplicatesCollapsed(t *testing.T) {
	err := analyze(t, `
var a = [1];
var b = a;
while (running) {
	log(a);
}
`)
	require.Error(t, err)
	el, ok := err.(ownership.ErrorList)
	require.True(t, ok)
	assert.Len(t, el, 1, "two analysis passes must not duplicate reports")
}

func TestComposeAnalyzedAsLoop(t *testing.T) {
	err := analyze(t, `
var a = [1];
compose {
	var b = a;
	break;
}
`)
	require.Error(t, err)
	assert.Equal(t, ownership.UseAfterMove, firstError(t, err).Kind)
}

func TestConflictingBorrow(t *testing.T) {
	err := analyze(t, `
var a = [1, 2];
a[0] = a[1];
`)
	require.Error(t, err)
	e := firstError(t, err)
	assert.Equal(t, ownership.ConflictingBorrow, e.Kind)
	assert.Contains(t, e.Message, `"a"`)
}

func TestIndexAssignmentBorrowRules(t *testing.T) {
	err := analyze(t, `
var a = [1, 2];
a[0] = 3;
a[1] = a[0] + 0;
`)
	// a[0] appears in an arithmetic read on the right, which borrows a,
	// so the second assignment conflicts; the first does not.
	require.Error(t, err)
	assert.Equal(t, ownership.ConflictingBorrow, firstError(t, err).Kind)
}

func TestPlainIndexAssignment(t *testing.T) {
	err := analyze(t, `
var a = [1, 2];
var x = 5;
a[0] = x + 1;
`)
	assert.NoError(t, err)
}

func TestFunctionBodiesAnalyzedIndependently(t *testing.T) {
	err := analyze(t, `
fn swapFirst(xs) {
	var head = xs;
	log(head);
}
`)
	assert.NoError(t, err)
}

func TestFunctionBodyViolationReported(t *testing.T) {
	err := analyze(t, `
fn bad() {
	var a = [1];
	var b = a;
	log(a);
}
`)
	require.Error(t, err)
	assert.Equal(t, ownership.UseAfterMove, firstError(t, err).Kind)
}

func TestMethodBodyViolationReported(t *testing.T) {
	err := analyze(t, `
class Holder {
	fn leak() {
		var a = [1];
		var b = a;
		log(a);
	}
}
`)
	require.Error(t, err)
	assert.Equal(t, ownership.UseAfterMove, firstError(t, err).Kind)
}

func TestUnknownIdentifiersIgnored(t *testing.T) {
	// Undefined variables are a runtime concern, not an ownership one.
	err := analyze(t, `log(mystery);`)
	assert.NoError(t, err)
}

func TestInfoClasses(t *testing.T) {
	prog, err := parser.Parse(`
var a = [1];
var n = 2;
var c = whoKnows();
`)
	require.NoError(t, err)
	info, err := ownership.Analyze(prog)
	require.NoError(t, err)

	classes := make(map[string]ownership.Class)
	for decl, class := range info.Classes {
		classes[decl.Name] = class
	}
	assert.Equal(t, ownership.ClassRef, classes["a"])
	assert.Equal(t, ownership.ClassValue, classes["n"])
	assert.Equal(t, ownership.ClassUnknown, classes["c"])
}
