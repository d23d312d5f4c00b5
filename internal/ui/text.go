package ui

// User-facing strings. The backends and their users work in Indonesian, so
// the interface does too.
const (
	AlertEmptySearch     = "Ketik nama kota dulu!"
	AlertNotFound        = "Lokasi tidak ditemukan. Coba nama yang lebih spesifik."
	AlertSearchFailed    = "Gagal mencari lokasi."
	AlertNoGPS           = "Perangkat tidak mendukung GPS."
	AlertGPSFailedPrefix = "Gagal ambil lokasi: "
	AlertNoTarget        = "Pilih lokasi target dulu (via Search, GPS, atau Klik Peta)!"
	AlertForensicBackend = "Gagal koneksi ke Backend. Pastikan uvicorn jalan."
	AlertForecastBackend = "Gagal koneksi ke API!"
	AlertSaveFailed      = "Gagal menyimpan lokasi."
	AlertDeleteFailed    = "Gagal menghapus lokasi."
	AlertPlacesFailed    = "Gagal memuat lokasi tersimpan."

	labelSearchIdle   = "🔍"
	labelLocateIdle   = "📍"
	labelBusy         = "⏳"
	labelForensicIdle = "JALANKAN AUDIT FORENSIK"
	labelForensicBusy = "⚡ MENGANALISIS SAR..."
	labelForecastIdle = "CEK PREDIKSI 3 HARI"
	labelForecastBusy = "⏳ MEMUAT PREDIKSI..."
)
