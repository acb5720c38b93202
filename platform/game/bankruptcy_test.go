package game

import (
	"testing"
)

func TestChargeFromCash(t *testing.T) {
	s := testState(t, 2)
	s.charge(s.Players[0], 100, s.Players[1])
	if s.Players[0].Cash != StartingCash-100 || s.Players[1].Cash != StartingCash+100 {
		t.Fatalf("cash after charge: %d / %d", s.Players[0].Cash, s.Players[1].Cash)
	}
}

func TestChargeAutoLiquidates(t *testing.T) {
	s := testState(t, 2)
	p := s.Players[0]
	p.Cash = 50
	give(s, "p1", 1, 5) // mortgage values $30 and $100

	// $150 owed, $50 cash, $130 raisable by mortgage: covered
	s.charge(p, 150, s.Players[1])
	if p.Bankrupt {
		t.Fatal("player went bankrupt despite raisable funds")
	}
	if p.Cash != 30 {
		t.Fatalf("cash = %d, want 30 after mortgaging both and paying", p.Cash)
	}
	if !s.Props[1].Mortgaged || !s.Props[5].Mortgaged {
		t.Fatal("holdings not mortgaged to cover the debt")
	}
	if s.Players[1].Cash != StartingCash+150 {
		t.Fatalf("creditor cash = %d, want %d", s.Players[1].Cash, StartingCash+150)
	}
}

func TestChargeSellsBuildingsBeforeMortgaging(t *testing.T) {
	s := testState(t, 2)
	p := s.Players[0]
	p.Cash = 10
	b1, b2 := brownGroup()
	give(s, "p1", b1, b2)
	placeHouses(s, b1, 1)
	placeHouses(s, b2, 1)

	// $40 owed; two houses at $25 refund each cover it without mortgaging
	s.charge(p, 40, nil)
	if p.Bankrupt {
		t.Fatal("player went bankrupt despite sellable buildings")
	}
	if s.Props[b1].Houses+s.Props[b2].Houses != 0 {
		t.Fatal("buildings survived the liquidation")
	}
	if s.Props[b1].Mortgaged || s.Props[b2].Mortgaged {
		t.Fatal("mortgaged while building sales sufficed")
	}
	if p.Cash != 10+50-40 {
		t.Fatalf("cash = %d, want 20", p.Cash)
	}
	checkBankSupply(t, s)
}

func TestBankruptcyHandsEstateToCreditor(t *testing.T) {
	s := testState(t, 3)
	p := s.Players[0]
	creditor := s.Players[1]
	p.Cash = 50
	p.JailCards = 1
	give(s, "p1", 5)
	s.Props[5].Mortgaged = true

	// $300 owed against $50 cash and nothing left to mortgage
	s.charge(p, 300, creditor)
	if !p.Bankrupt {
		t.Fatal("unpayable debt did not bankrupt")
	}
	if creditor.Cash != StartingCash+50 {
		t.Fatalf("creditor cash = %d, want remaining $50 handed over", creditor.Cash)
	}
	if creditor.JailCards != 1 {
		t.Fatal("jail card not handed over")
	}
	prop := s.Props[5]
	if prop.Owner == nil || *prop.Owner != creditor.ID {
		t.Fatal("property not handed to the creditor")
	}
	if !prop.Mortgaged {
		t.Fatal("mortgage flag cleared in the handover")
	}
	if p.Cash != 0 || p.JailCards != 0 {
		t.Fatal("bankrupt player kept assets")
	}
	if s.Phase == PhaseGameOver {
		t.Fatal("game ended with two players still solvent")
	}
}

func TestBankruptcyToBankReturnsCleanProperties(t *testing.T) {
	s := testState(t, 3)
	p := s.Players[0]
	give(s, "p1", 1, 5)
	s.Props[5].Mortgaged = true
	p.Cash = 0

	s.charge(p, 500, nil)
	if !p.Bankrupt {
		t.Fatal("unpayable debt did not bankrupt")
	}
	for _, pos := range []int{1, 5} {
		prop := s.Props[pos]
		if prop.Owner != nil {
			t.Fatalf("property %d not returned to the bank", pos)
		}
		if prop.Mortgaged {
			t.Fatalf("property %d kept its mortgage at the bank", pos)
		}
	}
}

func TestBankruptcyLiquidatesBuildingsFirst(t *testing.T) {
	s := testState(t, 3)
	p := s.Players[0]
	creditor := s.Players[1]
	p.Cash = 0
	b1, b2 := brownGroup()
	give(s, "p1", b1, b2)
	placeHouses(s, b1, 4)
	placeHouses(s, b2, 4)

	// $1000 owed; eight houses refund $200, still short
	s.charge(p, 1000, creditor)
	if !p.Bankrupt {
		t.Fatal("debt should exceed full liquidation")
	}
	if s.Props[b1].Houses != 0 || s.Props[b2].Houses != 0 {
		t.Fatal("buildings transferred instead of liquidated")
	}
	if s.Bank.Houses != BankHouses {
		t.Fatalf("bank houses = %d, supply not restored", s.Bank.Houses)
	}
	// building refunds plus cash go to the creditor with the deeds
	if creditor.Cash != StartingCash+200 {
		t.Fatalf("creditor cash = %d, want %d", creditor.Cash, StartingCash+200)
	}
	checkBankSupply(t, s)
}

func TestLiquidationValue(t *testing.T) {
	s := testState(t, 2)
	p := s.Players[0]
	p.Cash = 100
	b1, b2 := brownGroup()
	give(s, "p1", b1, b2, 5)
	placeHouses(s, b1, 2)
	s.Props[5].Mortgaged = true

	// cash 100 + two houses at 25 + mortgages 30+30; pos 5 already spent
	want := 100 + 50 + 60
	if got := s.liquidationValue(p); got != want {
		t.Fatalf("liquidation value = %d, want %d", got, want)
	}
}
