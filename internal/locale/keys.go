package locale

import util "github.com/bietkhonhungvandi212/fitsim/internal/utils"

// Alert messages are keyed by the English template the error was built
// with, so untranslated keys render as plain English.
var indonesian = map[string]string{
	util.MsgInvalidPageInput:     "Ada input page yang tidak valid (posisi %d: %q).",
	util.MsgInvalidFrameInput:    "Ada input frame yang tidak valid (posisi %d: %q).",
	util.MsgPageTooLarge:         "Ukuran page pada posisi %d melebihi %d.",
	util.MsgFrameTooLarge:        "Ukuran frame pada posisi %d melebihi %d.",
	util.MsgEmptyPageInput:       "Input page tidak boleh kosong.",
	util.MsgEmptyFrameInput:      "Input frame tidak boleh kosong.",
	util.MsgTooFewFrames:         "Jumlah frame harus LEBIH BANYAK dari jumlah page. Anda memasukkan %d page, sementara anda hanya menyediakan %d frame.",
	util.MsgNoAlgorithm:          "Anda harus mengaktifkan salah satu algoritma.",
	util.MsgUnknownStrategy:      "Algoritma %q tidak dikenal.",
	util.MsgStrategyNotSupported: "Algoritma %s belum tersedia.",
	util.MsgStrategyNotInSession: "Algoritma %s tidak aktif pada sesi ini.",
	util.MsgInvalidHistory:       "History yang dipilih tidak valid (%d).",
	util.MsgUnknownSession:       "Sesi simulasi %s tidak ditemukan.",
	util.MsgInvalidFraction:      "Proporsi frame tidak tersedia %v tidak valid.",
	util.MsgEmptyScenario:        "Skenario kosong.",
	util.MsgMalformedScenario:    "Skenario tidak valid: %v",
	util.MsgMalformedBody:        "Isi permintaan tidak valid.",
	util.MsgBodyTooLarge:         "Isi permintaan melebihi %d byte.",
	util.MsgRateLimited:          "Terlalu banyak permintaan.",
}
