package domain

// WithdrawalCeiling is the largest amount a single withdrawal may dispense,
// in whole R$.
const WithdrawalCeiling = 1000

// NoteBundle is a candidate combination of bills for a cash withdrawal.
type NoteBundle struct {
	Hundreds int64
	Fifties  int64
	Twenties int64
}

// Amount is the cash value assembled by this bundle.
func (b NoteBundle) Amount() int64 {
	return AssembleCash(b.Hundreds, b.Fifties, b.Twenties)
}

// AssembleCash returns the amount formed by the given quantities of 100, 50
// and 20 bills.
func AssembleCash(hundreds, fifties, twenties int64) int64 {
	return hundreds*100 + fifties*50 + twenties*20
}

// WithdrawalOptions lists the feasible bill combinations for an amount, in
// priority order: 100s first, then 50s first, then 20s only. Each greedy
// candidate is validated by re-summing, since a greedy pass can miss the
// exact amount for some residues, and duplicates collapse into the earlier
// entry. It returns nil when the amount exceeds the ceiling or divides
// neither 20 nor 50, as no combination of those notes reaches it.
func WithdrawalOptions(amount int64) []NoteBundle {
	if amount < 0 || amount > WithdrawalCeiling {
		return nil
	}
	if amount%20 != 0 && amount%50 != 0 {
		return nil
	}

	hundredsFirst := NoteBundle{Hundreds: amount / 100}
	remaining := amount % 100
	hundredsFirst.Fifties = remaining / 50
	remaining %= 50
	hundredsFirst.Twenties = remaining / 20

	fiftiesFirst := NoteBundle{Fifties: amount / 50}
	fiftiesFirst.Twenties = (amount % 50) / 20

	twentiesOnly := NoteBundle{Twenties: amount / 20}

	var options []NoteBundle
	for _, candidate := range []NoteBundle{hundredsFirst, fiftiesFirst, twentiesOnly} {
		if candidate.Amount() != amount {
			continue
		}
		duplicate := false
		for _, accepted := range options {
			if accepted == candidate {
				duplicate = true
				break
			}
		}
		if !duplicate {
			options = append(options, candidate)
		}
	}

	return options
}
