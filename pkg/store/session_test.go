package store

import (
	"testing"

	"loan-assistant-be/internal/entity"
)

func TestStageOrdering(t *testing.T) {
	ordered := []Stage{
		StageWelcome, StagePhoneRequest, StageOTPVerification,
		StageDiscovery, StageSales, StageVerification,
		StageUnderwriting, StageSanctioned,
	}
	for i := 1; i < len(ordered); i++ {
		if !ordered[i].After(ordered[i-1]) {
			t.Errorf("%s should come after %s", ordered[i], ordered[i-1])
		}
		if ordered[i-1].After(ordered[i]) && ordered[i-1] != ordered[i] {
			t.Errorf("%s should not come after %s", ordered[i-1], ordered[i])
		}
	}

	if !StageRejected.After(StageUnderwriting) {
		t.Error("rejected must compare after underwriting")
	}
}

func TestStageTerminal(t *testing.T) {
	for _, s := range []Stage{StageSanctioned, StageRejected} {
		if !s.Terminal() {
			t.Errorf("%s must be terminal", s)
		}
	}
	for _, s := range []Stage{StageWelcome, StageDiscovery, StageUnderwriting} {
		if s.Terminal() {
			t.Errorf("%s must not be terminal", s)
		}
	}
}

func TestSetProfileIsImmutable(t *testing.T) {
	s := NewSession("s1")
	first := &entity.CustomerProfile{Name: "Rahul Sharma"}
	s.SetProfile(first)
	s.SetProfile(&entity.CustomerProfile{Name: "Someone Else"})

	if s.Profile != first {
		t.Errorf("profile overwritten: got %q", s.Profile.Name)
	}
}

func TestLockOfferFreezesTerms(t *testing.T) {
	s := NewSession("s1")
	s.LockOffer(48, 13167)
	s.LockOffer(60, 11122)

	if s.FinalTenure != 48 || s.FinalEMI != 13167 {
		t.Errorf("locked terms changed: tenure=%d emi=%.0f", s.FinalTenure, s.FinalEMI)
	}
}

func TestRecentHistoryWindow(t *testing.T) {
	s := NewSession("s1")
	for i := 0; i < 10; i++ {
		s.AppendHistory("user", "msg")
	}

	if got := len(s.RecentHistory(6)); got != 6 {
		t.Errorf("window size = %d, want 6", got)
	}
	if got := len(s.RecentHistory(20)); got != 10 {
		t.Errorf("short transcript should be returned whole, got %d", got)
	}
	if got := len(s.History); got != 10 {
		t.Errorf("stored transcript truncated to %d", got)
	}
}
