package tui

import (
	"bytes"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/minjipark/encore/internal/logging"
	"github.com/minjipark/encore/pkg/api"
	"github.com/minjipark/encore/pkg/domain"
)

func newTestMyPageModel() myPageModel {
	m := newMyPageModel(nil, logging.Discard())
	m.width = 80
	m.height = 24
	return m
}

func TestMyPageRendersProfile(t *testing.T) {
	m := newTestMyPageModel()
	m.setMember(&domain.Member{
		Email:             "minji@encore.fan",
		Name:              "Kim Minji",
		Nickname:          "minji",
		Role:              domain.RoleUser,
		MembershipPayType: domain.PayTypeRecurring,
		CreatedAt:         time.Now(),
	})

	view := m.View()
	for _, want := range []string{"minji@encore.fan", "Kim Minji", "recurring"} {
		if !strings.Contains(view, want) {
			t.Errorf("expected %q in profile view, got:\n%s", want, view)
		}
	}
}

func TestMyPageEditPrefillsCurrentProfile(t *testing.T) {
	m := newTestMyPageModel()
	m.setMember(&domain.Member{Name: "Kim Minji", Nickname: "minji"})

	m, _ = m.Update(keyPress("e"))
	if m.section != sectionEditProfile {
		t.Fatal("e should open the edit form")
	}
	if m.editName != "Kim Minji" || m.editNickname != "minji" {
		t.Errorf("form must prefill current values, got %q / %q", m.editName, m.editNickname)
	}
}

func TestMyPageEditRequiresNameAndNickname(t *testing.T) {
	m := newTestMyPageModel()
	m.setMember(&domain.Member{Name: "Kim Minji", Nickname: "minji"})
	m, _ = m.Update(keyPress("e"))

	m.editNickname = ""
	m, cmd := m.Update(keyPress("enter"))
	if cmd != nil || m.saving {
		t.Error("empty nickname must block saving")
	}
}

func TestMyPageProfileSavedUpdatesView(t *testing.T) {
	m := newTestMyPageModel()
	m.setMember(&domain.Member{Nickname: "minji"})
	m.section = sectionEditProfile
	m.saving = true

	m, _ = m.Update(profileSavedMsg{member: &domain.Member{Nickname: "minji_v2"}})
	if m.section != sectionProfile {
		t.Error("save should return to the profile")
	}
	if !strings.Contains(m.View(), "minji_v2") {
		t.Errorf("view must render the server's post-update profile, got:\n%s", m.View())
	}
}

func TestMyPagePasswordFieldsMasked(t *testing.T) {
	m := newTestMyPageModel()
	m.setMember(&domain.Member{Nickname: "minji"})
	m, _ = m.Update(keyPress("w"))

	for _, r := range "secret" {
		m, _ = m.Update(keyPress(string(r)))
	}
	view := m.View()
	if strings.Contains(view, "secret") {
		t.Errorf("password must never render in clear text, got:\n%s", view)
	}
	if !strings.Contains(view, "******") {
		t.Errorf("expected masked password, got:\n%s", view)
	}
}

func TestMyPageOrderHistoryRenders(t *testing.T) {
	m := newTestMyPageModel()
	m.section = sectionOrders
	m, _ = m.Update(ordersLoadedMsg{orders: []domain.Order{
		{OrderNo: "ORD-1001", Status: domain.OrderStatusPaid, PlanCode: "MEMBERSHIP_M", Amount: 9900, CreatedAt: time.Now()},
		{OrderNo: "ORD-1000", Status: domain.OrderStatusFailed, ItemName: "tour hoodie", Amount: 59000, CreatedAt: time.Now()},
	}})

	view := m.View()
	for _, want := range []string{"PAID", "MEMBERSHIP_M", "FAILED", "tour hoodie", "9,900won"} {
		if !strings.Contains(view, want) {
			t.Errorf("expected %q in order history, got:\n%s", want, view)
		}
	}
}

func TestMyPageStaleOrdersDropped(t *testing.T) {
	m := newTestMyPageModel()
	m.section = sectionOrders
	m.reqID = 2
	m, _ = m.Update(ordersLoadedMsg{reqID: 1, orders: []domain.Order{{OrderNo: "stale"}}})
	if len(m.orders) != 0 {
		t.Error("stale orders response must be dropped")
	}
}

func TestMyPageLogoutWarnsWhenRevocationFails(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusInternalServerError)
		w.Write([]byte(`{"isSuccess":false,"resCode":"SRV-500","resMessage":"revocation backend down"}`))
	}))
	defer srv.Close()

	var buf bytes.Buffer
	logger := slog.New(slog.NewTextHandler(&buf, nil))
	m := newMyPageModel(api.New(srv.URL, time.Second, nil), logger)

	msg := m.logout()()
	if _, ok := msg.(logoutDoneMsg); !ok {
		t.Fatalf("logout must complete regardless of revocation, got %T", msg)
	}
	if !strings.Contains(buf.String(), "token revocation failed") {
		t.Errorf("expected a revocation warning in the log, got: %s", buf.String())
	}
}

func TestMyPageProfileShowsAbsoluteImageURL(t *testing.T) {
	m := newMyPageModel(api.New("https://api.encore.example", time.Second, nil), logging.Discard())
	m.width = 80
	m.height = 24
	m.setMember(&domain.Member{
		Email:            "minji@encore.fan",
		Name:             "Kim Minji",
		Nickname:         "minji",
		Role:             domain.RoleUser,
		ProfileImagePath: "/uploads/minji.png",
		CreatedAt:        time.Now(),
	})

	if !strings.Contains(m.View(), "https://api.encore.example/uploads/minji.png") {
		t.Errorf("expected the absolute profile image URL, got:\n%s", m.View())
	}
}
