package domain

import "errors"

var (
	ErrNotFound     = errors.New("nicht gefunden")
	ErrInvalidInput = errors.New("ungültige eingabe")
	// ErrUnavailable: weder Netzwerk noch Cache lieferten Daten.
	ErrUnavailable = errors.New("keine daten verfügbar")
)

// Fehlerarten beim Laden eines Bundles. Alle vier werden an der Ladegrenze
// abgefangen und nie als unbehandelter Fehler weitergereicht.
var (
	// ErrNetwork steht für einen fehlgeschlagenen Abruf oder einen HTTP-Status ausserhalb 2xx.
	ErrNetwork = errors.New("netzwerkfehler")
	// ErrMalformedResponse steht für eine Antwort, die kein JSON ist (z.B. eine HTML-Seite).
	ErrMalformedResponse = errors.New("fehlerhafte antwort")
	// ErrInvalidShape steht für gültiges JSON mit unerwarteter Struktur.
	ErrInvalidShape = errors.New("ungültige datenstruktur")
	// ErrStorage steht für Lese- oder Schreibfehler des Cache-Speichers.
	ErrStorage = errors.New("speicherfehler")
)
