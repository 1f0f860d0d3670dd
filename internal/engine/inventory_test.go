package engine_test

import (
	"context"
	"errors"
	"testing"

	"boardquest/internal/engine"
)

func names(cards []engine.EffectCard) []string {
	var out []string
	for _, c := range cards {
		out = append(out, c.Name)
	}
	return out
}

func equalNames(t *testing.T, got []engine.EffectCard, want ...string) {
	t.Helper()
	g := names(got)
	if len(g) != len(want) {
		t.Fatalf("cards: got %v, want %v", g, want)
	}
	for i := range want {
		if g[i] != want[i] {
			t.Fatalf("cards: got %v, want %v", g, want)
		}
	}
}

func fullInventory(t *testing.T) (*engine.Inventory, *engine.Player) {
	t.Helper()
	inv, err := engine.NewInventory(3)
	if err != nil {
		t.Fatalf("new inventory: %v", err)
	}
	p := human("A")
	for _, n := range []string{"A", "B", "C"} {
		if inv.TryAdd(p, benefit(n, engine.EffectRelativeMove)) != engine.Added {
			t.Fatalf("add %s: expected Added", n)
		}
	}
	return inv, p
}

func TestNewInventoryRejectsNonPositive(t *testing.T) {
	for _, n := range []int{0, -1} {
		if _, err := engine.NewInventory(n); !errors.Is(err, engine.ErrInvalidStorage) {
			t.Errorf("NewInventory(%d): got %v, want ErrInvalidStorage", n, err)
		}
	}
}

func TestInventoryBound(t *testing.T) {
	inv, err := engine.NewInventory(3)
	if err != nil {
		t.Fatal(err)
	}
	p := human("A")
	for i := 0; i < 10; i++ {
		res := inv.TryAdd(p, benefit(string(rune('A'+i)), engine.EffectRepeatTurn))
		want := engine.Added
		if i >= 3 {
			want = engine.Full
		}
		if res != want {
			t.Fatalf("add %d: got %v, want %v", i, res, want)
		}
		if inv.Len(p) > inv.Max() {
			t.Fatalf("add %d: %d cards exceed max %d", i, inv.Len(p), inv.Max())
		}
	}
	equalNames(t, inv.Cards(p), "A", "B", "C")
}

func TestOfferFullReplaceConfirm(t *testing.T) {
	inv, p := fullInventory(t)
	gw := &scriptGateway{replace: []int{1}, confirm: []bool{true}}

	res, err := inv.Offer(context.Background(), gw, p, benefit("D", engine.EffectRepeatTurn))
	if err != nil {
		t.Fatalf("offer: %v", err)
	}
	if res.Outcome != engine.Replaced || res.Slot != 1 || res.Lost.Name != "B" {
		t.Fatalf("offer result: got %+v", res)
	}
	if len(gw.seen) != 1 || len(gw.seen[0]) != 3 {
		t.Fatalf("selection should offer exactly 3 choices, got %v", gw.seen)
	}
	equalNames(t, inv.Cards(p), "A", "D", "C")
	if inv.Pending(p) != nil {
		t.Error("pending replacement should be discarded after the swap")
	}
}

func TestOfferDeclineReturnsToSelection(t *testing.T) {
	inv, p := fullInventory(t)
	gw := &scriptGateway{replace: []int{0, 2}, confirm: []bool{false, true}}

	res, err := inv.Offer(context.Background(), gw, p, benefit("D", engine.EffectRepeatTurn))
	if err != nil {
		t.Fatalf("offer: %v", err)
	}
	if res.Outcome != engine.Replaced || res.Slot != 2 {
		t.Fatalf("offer result: got %+v", res)
	}
	if gw.calls["replace"] != 2 || gw.calls["confirm"] != 2 {
		t.Fatalf("calls: %v", gw.calls)
	}
	equalNames(t, inv.Cards(p), "A", "B", "D")
}

func TestOfferCancelKeepsStorage(t *testing.T) {
	inv, p := fullInventory(t)
	gw := &scriptGateway{}

	res, err := inv.Offer(context.Background(), gw, p, benefit("D", engine.EffectRepeatTurn))
	if err != nil {
		t.Fatalf("offer: %v", err)
	}
	if res.Outcome != engine.Discarded {
		t.Fatalf("outcome: got %s, want discarded", res.Outcome)
	}
	if gw.calls["confirm"] != 0 {
		t.Error("cancel should not reach the confirmation step")
	}
	equalNames(t, inv.Cards(p), "A", "B", "C")
}

func TestOfferInvalidSlotIsReasked(t *testing.T) {
	inv, p := fullInventory(t)
	gw := &scriptGateway{replace: []int{7, -4}}

	res, err := inv.Offer(context.Background(), gw, p, benefit("D", engine.EffectRepeatTurn))
	if err != nil {
		t.Fatalf("offer: %v", err)
	}
	if res.Outcome != engine.Discarded {
		t.Fatalf("outcome: got %s, want discarded", res.Outcome)
	}
	if gw.calls["replace"] != 3 {
		t.Fatalf("replace asked %d times, want 3", gw.calls["replace"])
	}
	equalNames(t, inv.Cards(p), "A", "B", "C")
}

func TestOfferStoresWhenRoom(t *testing.T) {
	inv, err := engine.NewInventory(3)
	if err != nil {
		t.Fatal(err)
	}
	p := human("A")
	gw := &scriptGateway{}
	res, err := inv.Offer(context.Background(), gw, p, benefit("A", engine.EffectRepeatTurn))
	if err != nil || res.Outcome != engine.Stored || res.Slot != 0 {
		t.Fatalf("offer: %+v, %v", res, err)
	}
	if gw.calls["replace"] != 0 {
		t.Error("free slot should not start a replacement")
	}
}

type pendingWatcher struct {
	*scriptGateway
	inv *engine.Inventory
	got *engine.PendingReplacement
}

func (p *pendingWatcher) AskConfirmReplacement(ctx context.Context, pl *engine.Player, slot int, current, incoming engine.EffectCard) (bool, error) {
	p.got = p.inv.Pending(pl)
	return p.scriptGateway.AskConfirmReplacement(ctx, pl, slot, current, incoming)
}

func TestPendingReplacementVisibleWhileConfirming(t *testing.T) {
	inv, p := fullInventory(t)
	watch := &pendingWatcher{
		scriptGateway: &scriptGateway{replace: []int{2, engine.CancelChoice}},
		inv:           inv,
	}
	if _, err := inv.Offer(context.Background(), watch, p, benefit("D", engine.EffectRepeatTurn)); err != nil {
		t.Fatal(err)
	}
	if watch.got == nil {
		t.Fatal("expected a pending replacement during confirmation")
	}
	if watch.got.Slot != 2 || !watch.got.Confirming || watch.got.Incoming.Name != "D" {
		t.Errorf("pending: got %+v", watch.got)
	}
	if inv.Pending(p) != nil {
		t.Error("pending replacement should be gone after cancel")
	}
}

func TestRemoveAndReplaceInvalidIndex(t *testing.T) {
	inv, p := fullInventory(t)
	if _, err := inv.Remove(p, 3); !errors.Is(err, engine.ErrInvalidIndex) {
		t.Errorf("remove: got %v, want ErrInvalidIndex", err)
	}
	if _, err := inv.Replace(p, -1, benefit("X", engine.EffectRepeatTurn)); !errors.Is(err, engine.ErrInvalidIndex) {
		t.Errorf("replace: got %v, want ErrInvalidIndex", err)
	}
	equalNames(t, inv.Cards(p), "A", "B", "C")

	if n := inv.Clear(p); n != 3 || inv.Len(p) != 0 {
		t.Errorf("clear: lost %d, left %d", n, inv.Len(p))
	}
}

func TestUseRoutesToResolver(t *testing.T) {
	p := human("A")
	f := newFixture(t, []*engine.Player{p}, testConfig(neutralBoard(10, nil)), nil)
	inv := f.game.Inventory
	inv.TryAdd(p, benefit("Again", engine.EffectRepeatTurn))
	inv.TryAdd(p, engine.EffectCard{Name: "Hop", Kind: engine.EffectRelativeMove, Steps: 3, Intent: engine.IntentBenefit})

	if err := inv.Use(context.Background(), f.game, p, 5); !errors.Is(err, engine.ErrInvalidIndex) {
		t.Fatalf("use invalid: got %v, want ErrInvalidIndex", err)
	}
	if inv.Len(p) != 2 {
		t.Fatalf("invalid use changed storage: %d cards", inv.Len(p))
	}

	if err := inv.Use(context.Background(), f.game, p, 1); err != nil {
		t.Fatalf("use hop: %v", err)
	}
	if p.Tile != 3 {
		t.Errorf("tile after hop: got %d, want 3", p.Tile)
	}
	if err := inv.Use(context.Background(), f.game, p, 0); err != nil {
		t.Fatalf("use again: %v", err)
	}
	if !p.RepeatTurnPending {
		t.Error("repeat turn card should set the flag")
	}
	if inv.Len(p) != 0 {
		t.Errorf("used cards should leave storage, %d left", inv.Len(p))
	}
	if f.rec.count(engine.EventCardUsed) != 2 {
		t.Errorf("card_used events: got %d, want 2", f.rec.count(engine.EventCardUsed))
	}
}

func TestOfferGivesUpAfterRepeatedInvalidSlots(t *testing.T) {
	inv, p := fullInventory(t)
	gw := &scriptGateway{replace: []int{9, 9, 9, 9, 9, 9, 9}}

	res, err := inv.Offer(context.Background(), gw, p, benefit("D", engine.EffectRepeatTurn))
	if !errors.Is(err, engine.ErrInventoryFull) {
		t.Fatalf("got %v, want ErrInventoryFull", err)
	}
	if res.Outcome != engine.Discarded {
		t.Errorf("outcome: got %s, want discarded", res.Outcome)
	}
	if gw.calls["replace"] != 5 {
		t.Errorf("replacement asked %d times, want 5", gw.calls["replace"])
	}
}
