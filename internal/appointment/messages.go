package appointment

// Caller-facing Greek phrases. The agent speaks these verbatim, so
// wording changes are product decisions, not refactors.
const (
	msgNeedIdentityCheck  = "Μια στιγμή, χρειάζομαι το όνομά σας και τον αριθμό τηλεφώνου σας για να ελέγξω τη διαθεσιμότητα."
	msgNeedIdentityNext   = "Μια στιγμή, χρειάζομαι το όνομά σας και τον αριθμό τηλεφώνου σας για να ελέγξω τα διαθέσιμα ραντεβού."
	msgNeedIdentityCreate = "Μια στιγμή, χρειάζομαι το όνομά σας και τον αριθμό τηλεφώνου σας για να δημιουργήσω το ραντεβού."
	msgNeedIdentityUpdate = "Μια στιγμή, χρειάζομαι το όνομά σας και τον αριθμό τηλεφώνου σας για να ενημερώσω το ραντεβού."
	msgNeedIdentityCancel = "Μια στιγμή, χρειάζομαι το όνομά σας και τον αριθμό τηλεφώνου σας για να ακυρώσω το ραντεβού."

	msgCheckFailed       = "Λυπάμαι, δεν μπόρεσα να ελέγξω το ημερολόγιο αυτή τη στιγμή."
	msgNoAvailability    = "Δεν υπάρχουν διαθέσιμα ραντεβού στο διάστημα που ζητήσατε."
	msgSuggestOtherDates = "Θα μπορούσα να ελέγξω άλλες ημερομηνίες;"
	msgSlotsFound        = "Υπάρχουν %d διαθέσιμα ραντεβού."

	msgNextFailed     = "Δεν μπόρεσα να ελέγξω τη διαθεσιμότητα αυτή τη στιγμή."
	msgNoneInTwoWeeks = "Δεν υπάρχουν διαθέσιμα ραντεβού τις επόμενες 2 εβδομάδες."
	msgSuggestFurther = "Θέλετε να ελέγξω πιο μακριά στο μέλλον;"
	msgNextSlotIs     = "Το επόμενο διαθέσιμο ραντεβού είναι: %s"

	msgCreateFailed = "Λυπάμαι, δεν μπόρεσα να δημιουργήσω το ραντεβού."
	msgCreated      = "Εντάξει! Το ραντεβού σας έχει κλειστεί για %s %s στις %s. Σας περιμένουμε!"

	msgUpdateGone = "Λυπάμαι, δεν μπόρεσα να ενημερώσω το ραντεβού. Ίσως έχει ακυρωθεί ή δεν υπάρχει πλέον."
	msgUpdateFail = "Λυπάμαι, κάτι πήγε στραβά με την ενημέρωση του ραντεβού."
	msgUpdated    = "Το ραντεβού σας έχει ενημερωθεί επιτυχώς!"

	msgCancelGone = "Λυπάμαι, δεν μπόρεσα να ακυρώσω το ραντεβού. Ίσως έχει ήδη ακυρωθεί."
	msgCancelFail = "Λυπάμαι, κάτι πήγε στραβά με την ακύρωση του ραντεβού."
	msgCanceled   = "Το ραντεβού σας έχει ακυρωθεί επιτυχώς. Ελπίζουμε να σας δούμε σύντομα!"

	msgBadDate      = "Συγγνώμη, δεν κατάλαβα την ημερομηνία. Μπορείτε να την επαναλάβετε;"
	msgNeedEventID  = "Χρειάζομαι τον κωδικό του ραντεβού για να συνεχίσω."
	msgListFailed   = "Λυπάμαι, δεν μπόρεσα να βρω τα επερχόμενα ραντεβού αυτή τη στιγμή."
	msgUpcomingNone = "Δεν βρήκα επερχόμενα ραντεβού."
	msgUpcoming     = "Βρήκα %d επερχόμενα ραντεβού."
)

// DefaultAppointmentType is used when the caller does not name one.
const DefaultAppointmentType = "έλεγχος"
