package dispatch

// DefaultAckUtterance is spoken for functions without a dedicated
// acknowledgement line.
const DefaultAckUtterance = "Μια στιγμή..."

// DefaultAckMessages returns the per-function acknowledgement lines.
// The agent speaks these the moment a call starts, masking the
// calendar round-trip latency.
func DefaultAckMessages() map[string]string {
	return map[string]string{
		FuncCheckAvailability: "Ας δω... ελέγχω τη διαθεσιμότητα...",
		FuncNextSlots:         "Μια στιγμή, ψάχνω τα επόμενα διαθέσιμα ραντεβού...",
		FuncCreate:            "Εντάξει, κλείνω το ραντεβού...",
		FuncUpdate:            "Εντάξει, αλλάζω το ραντεβού...",
		FuncCancel:            "Εντάξει, ακυρώνω το ραντεβού...",
	}
}
