package integration

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/golangsnmp/asnops"
)

func TestForwardSMArgument(t *testing.T) {
	op := getOperation(t, loadCorpus(t), "mo-ForwardSM")
	arg := op.Argument
	require.NotNil(t, arg)
	assert.Equal(t, asnops.TypeSequence, arg.Type)

	names := make([]string, len(arg.Elements))
	for i, f := range arg.Elements {
		names[i] = f.Name
	}
	assert.Equal(t, []string{"sm-RP-DA", "sm-RP-OA", "sm-RP-UI", "extensionContainer"}, names)

	da := getField(t, arg, "sm-RP-DA")
	assert.Equal(t, asnops.TypeOctetString, da.Type)
	assert.Equal(t, "(SIZE(1..12))", da.Qualifiers)
	assert.False(t, da.Optional)

	ext := getField(t, arg, "extensionContainer")
	assert.True(t, ext.Optional)
	assert.Equal(t, asnops.TypeSequence, ext.Type)
}

func TestForwardSMExtensionContainer(t *testing.T) {
	op := getOperation(t, loadCorpus(t), "mo-ForwardSM")
	ext := getField(t, op.Argument, "extensionContainer")

	list := getField(t, ext, "privateExtensionList")
	require.NotNil(t, list.Tag)
	assert.Equal(t, uint32(0), *list.Tag)
	assert.True(t, list.Implicit)
	assert.True(t, list.Optional)
	assert.Equal(t, asnops.TypeSequence, list.Type)
	assert.Equal(t, "(SIZE(1..10))", list.Qualifiers)
	assert.Nil(t, list.Elements)

	entry := list.OfElement
	require.NotNil(t, entry)
	assert.Equal(t, asnops.TypeSequence, entry.Type)
	require.Len(t, entry.Elements, 2)

	extID := getField(t, entry, "extId")
	assert.Equal(t, asnops.TypeMapExtension, extID.Type)
	assert.Equal(t, ".&extensionId({ExtensionSet})", extID.Qualifiers)
	assert.False(t, extID.Optional)

	extType := getField(t, entry, "extType")
	assert.Equal(t, ".&ExtensionType({ExtensionSet}{@extId})", extType.Qualifiers)
	assert.True(t, extType.Optional)
}

func TestForwardSMResultAndErrors(t *testing.T) {
	op := getOperation(t, loadCorpus(t), "mo-ForwardSM")

	require.NotNil(t, op.Result)
	require.Len(t, op.Result.Elements, 1)
	ui := op.Result.Elements[0]
	assert.Equal(t, "sm-RP-UI", ui.Name)
	assert.True(t, ui.Optional)

	var names []string
	for _, ref := range op.Errors {
		assert.Nil(t, ref.Body)
		names = append(names, ref.Name)
	}
	assert.Equal(t, []string{
		"systemFailure",
		"unexpectedDataValue",
		"facilityNotSupported",
		"sm-DeliveryFailure",
	}, names)
}

func TestReportDeliveryStatusFields(t *testing.T) {
	op := getOperation(t, loadCorpus(t), "reportSM-DeliveryStatus")

	outcome := getField(t, op.Argument, "sm-DeliveryOutcome")
	assert.Equal(t, asnops.TypeEnumerated, outcome.Type)
	assert.Equal(t, []asnops.NamedValue{
		{Name: "memoryCapacityExceeded", Value: 0},
		{Name: "absentSubscriber", Value: 1},
		{Name: "successfulTransfer", Value: 2},
	}, outcome.Values)

	diag := getField(t, op.Argument, "absentSubscriberDiagnosticSM")
	require.NotNil(t, diag.Tag)
	assert.Equal(t, uint32(0), *diag.Tag)
	assert.Equal(t, asnops.TypeInteger, diag.Type)
	assert.Equal(t, "(0..255)", diag.Qualifiers)
	assert.True(t, diag.Optional)

	for _, name := range []string{"gprsSupportIndicator", "deliveryOutcomeIndicator"} {
		f := getField(t, op.Argument, name)
		assert.Equal(t, asnops.TypeNull, f.Type, name)
		assert.True(t, f.Implicit, name)
	}
}

func TestReadyForSMReturnResult(t *testing.T) {
	op := getOperation(t, loadCorpus(t), "readyForSM")

	require.NotNil(t, op.Result)
	assert.Equal(t, asnops.TypeBoolean, op.Result.Type)
	require.NotNil(t, op.Result.Value)
	assert.True(t, *op.Result.Value)

	reason := getField(t, op.Argument, "alertReason")
	v, ok := reason.NamedValue("memoryAvailable")
	require.True(t, ok)
	assert.Equal(t, int64(1), v.Value)
	_, ok = reason.NamedValue("ms-Present")
	assert.True(t, ok)
}

func TestInvokeChoiceAndInlineErrors(t *testing.T) {
	op := getOperation(t, loadCorpus(t), "invoke")

	arg := op.Argument
	require.NotNil(t, arg)
	assert.Equal(t, asnops.TypeChoice, arg.Type)
	present := getField(t, arg, "present")
	assert.Equal(t, "(-2147483648..2147483647)", present.Qualifiers)
	absent := getField(t, arg, "absent")
	require.NotNil(t, absent.Tag)
	assert.Equal(t, uint32(1), *absent.Tag)

	require.NotNil(t, op.Result)
	assert.Equal(t, asnops.TypeBoolean, op.Result.Type)
	assert.Nil(t, op.Result.Value)

	require.Len(t, op.Errors, 2)
	first := op.Errors[0].Body
	require.NotNil(t, first)
	require.NotNil(t, first.Parameter)
	assert.Equal(t, asnops.TypeNumericString, first.Parameter.Type)
	assert.Equal(t, "(SIZE(1..15))", first.Parameter.Qualifiers)
	require.NotNil(t, first.Code)
	assert.Equal(t, uint32(100), *first.Code)

	second := op.Errors[1].Body
	require.NotNil(t, second)
	assert.Nil(t, second.Parameter)
	require.NotNil(t, second.Code)
	assert.Equal(t, uint32(101), *second.Code)
}

// The second notify definition in the same document replaces the first.
func TestNotifyRedefinition(t *testing.T) {
	op := getOperation(t, loadCorpus(t), "notify")

	require.NotNil(t, op.Argument)
	assert.Equal(t, asnops.TypeBitString, op.Argument.Type)
	assert.Equal(t, []asnops.NamedValue{
		{Name: "subscriberChange", Value: 0},
		{Name: "serviceChange", Value: 1},
	}, op.Argument.Values)
	assert.Nil(t, op.Result)
	assert.Empty(t, op.Errors)
}
