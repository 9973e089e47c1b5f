package integration

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/golangsnmp/asnops"
)

func TestSystemFailureParameter(t *testing.T) {
	e := getError(t, loadCorpus(t), "systemFailure")
	require.NotNil(t, e.Parameter)
	assert.Equal(t, asnops.TypeEnumerated, e.Parameter.Type)
	require.Len(t, e.Parameter.Values, 8)

	for i, v := range e.Parameter.Values {
		assert.Equal(t, int64(i), v.Value, v.Name)
	}
	assert.Equal(t, "plmn", e.Parameter.Values[0].Name)
	assert.Equal(t, "rss", e.Parameter.Values[7].Name)
}

// A body holding only an extension marker is an empty, non-nil field list.
func TestExtensionOnlyParameters(t *testing.T) {
	cat := loadCorpus(t)
	for _, name := range []string{"dataMissing", "unexpectedDataValue", "messageWaitingListFull"} {
		t.Run(name, func(t *testing.T) {
			e := getError(t, cat, name)
			require.NotNil(t, e.Parameter)
			assert.Equal(t, asnops.TypeSequence, e.Parameter.Type)
			assert.NotNil(t, e.Parameter.Elements)
			assert.Empty(t, e.Parameter.Elements)
		})
	}
}

func TestUnknownSubscriberDiagnostic(t *testing.T) {
	e := getError(t, loadCorpus(t), "unknownSubscriber")

	diag := getField(t, e.Parameter, "unknownSubscriberDiagnostic")
	assert.True(t, diag.Optional)
	assert.Equal(t, []asnops.NamedValue{
		{Name: "imsiUnknown", Value: 0},
		{Name: "gprs-eps-SubscriptionUnknown", Value: 1},
		{Name: "npdbMismatch", Value: 2},
	}, diag.Values)
}

func TestDeliveryFailureCause(t *testing.T) {
	e := getError(t, loadCorpus(t), "sm-DeliveryFailure")
	require.Len(t, e.Parameter.Elements, 2)

	cause := getField(t, e.Parameter, "sm-EnumeratedDeliveryFailureCause")
	assert.False(t, cause.Optional)
	v, ok := cause.NamedValue("subscriberNotSC-Subscriber")
	require.True(t, ok)
	assert.Equal(t, int64(6), v.Value)

	info := getField(t, e.Parameter, "diagnosticInfo")
	assert.Equal(t, asnops.TypeOctetString, info.Type)
	assert.True(t, info.Optional)
}

func TestFacilityNotSupportedTags(t *testing.T) {
	e := getError(t, loadCorpus(t), "facilityNotSupported")
	require.Len(t, e.Parameter.Elements, 2)
	for i, f := range e.Parameter.Elements {
		require.NotNil(t, f.Tag, f.Name)
		assert.Equal(t, uint32(i), *f.Tag, f.Name)
		assert.Equal(t, asnops.TypeNull, f.Type, f.Name)
	}
}
