package kadmin

import "testing"

func TestNegotiatePicksMinOfOurMaxAndBrokerMax(t *testing.T) {
	fb := newFakeBrokerClient()
	fb.apiVersions[int16(APICreateTopics)] = 3 // broker only goes up to v3
	neg := NewNegotiator(fb)

	v, err := neg.Negotiate(0, APICreateTopics)
	if err != nil {
		t.Fatalf("Negotiate: %v", err)
	}
	if v != 3 {
		t.Fatalf("expected negotiated version 3 (broker's max), got %d", v)
	}
}

func TestNegotiateCapsAtOurOwnMax(t *testing.T) {
	fb := newFakeBrokerClient()
	fb.apiVersions[int16(APICreateTopics)] = 99 // broker advertises far above what we support
	neg := NewNegotiator(fb)

	v, err := neg.Negotiate(0, APICreateTopics)
	if err != nil {
		t.Fatalf("Negotiate: %v", err)
	}
	d := descriptorFor(APICreateTopics)
	if v != d.maxVersion {
		t.Fatalf("expected negotiated version capped at %d, got %d", d.maxVersion, v)
	}
}

func TestNegotiateFailsWhenBrokerDoesNotSupportAPI(t *testing.T) {
	fb := newFakeBrokerClient() // no apiVersions entries at all
	neg := NewNegotiator(fb)

	if _, err := neg.Negotiate(0, APICreateTopics); err == nil {
		t.Fatal("expected an error when the broker does not support the API")
	}
}

func TestRequireFeatureAndSupportsFeature(t *testing.T) {
	f := FeatureIncludeAuthorizedOperations
	if SupportsFeature(f, f.MinVersion-1) {
		t.Fatal("SupportsFeature should be false below the minimum version")
	}
	if !SupportsFeature(f, f.MinVersion) {
		t.Fatal("SupportsFeature should be true at the minimum version")
	}
	if err := RequireFeature(f, f.MinVersion-1); err == nil {
		t.Fatal("RequireFeature should error below the minimum version")
	}
	if err := RequireFeature(f, f.MinVersion); err != nil {
		t.Fatalf("RequireFeature should not error at the minimum version: %v", err)
	}
}

// TestListGroupsAuthorizedOpsMinVersionIsThree locks in the fix for the
// REDESIGN FLAG: the real wire minimum for ListGroups'
// include_authorized_operations is 3, not 1.
func TestListGroupsAuthorizedOpsMinVersionIsThree(t *testing.T) {
	if FeatureListGroupsAuthorizedOps.MinVersion != 3 {
		t.Fatalf("expected ListGroups authorized-ops min version 3, got %d", FeatureListGroupsAuthorizedOps.MinVersion)
	}
}
