package policy

import (
	"strings"
	"testing"

	"github.com/WaClaw/WaClaw/internal/tools"
)

const boss = "19998887777"

func TestSelectRolePartition(t *testing.T) {
	pol := Select(boss, boss)
	if pol.Role != RoleBoss {
		t.Errorf("expected RoleBoss for boss sender, got %s", pol.Role)
	}
	if len(pol.AllowedTools) != 1 || pol.AllowedTools[0] != tools.NameBroadcast {
		t.Errorf("boss policy must allow exactly [broadcast], got %v", pol.AllowedTools)
	}

	for _, sender := range []string{"12223334444", "923001234567", "", boss + "0"} {
		pol := Select(sender, boss)
		if pol.Role != RoleContact {
			t.Errorf("sender %q: expected RoleContact, got %s", sender, pol.Role)
		}
		if len(pol.AllowedTools) != 1 || pol.AllowedTools[0] != tools.NameEscalate {
			t.Errorf("sender %q: contact policy must allow exactly [escalate], got %v", sender, pol.AllowedTools)
		}
	}
}

func TestSelectSampling(t *testing.T) {
	bossPol := Select(boss, boss)
	if bossPol.Sampling.Temperature != 0.2 {
		t.Errorf("boss temperature: got %v, want 0.2", bossPol.Sampling.Temperature)
	}
	if bossPol.Sampling.MaxTokens != 512 {
		t.Errorf("boss max tokens: got %d, want 512", bossPol.Sampling.MaxTokens)
	}
	if bossPol.Sampling.PresencePenalty != 0 || bossPol.Sampling.FrequencyPenalty != 0 {
		t.Error("boss policy should not set repetition penalties")
	}

	contactPol := Select("12223334444", boss)
	if contactPol.Sampling.Temperature != 0.8 {
		t.Errorf("contact temperature: got %v, want 0.8", contactPol.Sampling.Temperature)
	}
	if contactPol.Sampling.TopP != 0.9 {
		t.Errorf("contact top_p: got %v, want 0.9", contactPol.Sampling.TopP)
	}
	if contactPol.Sampling.PresencePenalty != 0.8 || contactPol.Sampling.FrequencyPenalty != 1.0 {
		t.Errorf("contact penalties: got %v/%v, want 0.8/1.0",
			contactPol.Sampling.PresencePenalty, contactPol.Sampling.FrequencyPenalty)
	}
}

func TestSelectInstructions(t *testing.T) {
	bossPol := Select(boss, boss)
	if !strings.Contains(bossPol.Instructions, boss) {
		t.Error("boss instructions should reference the boss number")
	}
	if !strings.Contains(bossPol.Instructions, "broadcast") {
		t.Error("boss instructions should name the broadcast tool")
	}

	contactPol := Select("12223334444", boss)
	if !strings.Contains(contactPol.Instructions, "12223334444") {
		t.Error("contact instructions should reference the sender number")
	}
	if !strings.Contains(contactPol.Instructions, "escalate") {
		t.Error("contact instructions should name the escalate tool")
	}
	if strings.Contains(contactPol.Instructions, "broadcast") {
		t.Error("contact instructions must not mention the broadcast tool")
	}
}

func TestSelectDeterministic(t *testing.T) {
	a := Select("12223334444", boss)
	b := Select("12223334444", boss)
	if a.Instructions != b.Instructions || a.Role != b.Role || a.Sampling != b.Sampling {
		t.Error("Select must be deterministic for the same inputs")
	}
}
