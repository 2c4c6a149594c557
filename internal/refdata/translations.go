package refdata

// Translation is the UI copy for one language.
type Translation struct {
	Nav map[Tab]string

	Title    string
	Subtitle string

	Manufacturer string
	Model        string
	Year         string
	Mileage      string
	Transmission string
	FuelType     string
	Tax          string
	MPG          string
	EngineSize   string

	AnalyzeBtn     string
	Ready          string
	ReadyDesc      string
	Analyzing      string
	AnalyzingDesc  string
	Error          string
	ConnError      string
	EstimatedValue string
	Accuracy       string
	Locked         string
	Reset          string
	LockedDesc     string

	BatchTitle     string
	BatchDesc      string
	UploadBtn      string
	Processing     string
	BadFileType    string
	FileMissing    string
	BatchConnError string
	TemplateSaved  string
	ExportSaved    string
	TotalCars      string
	TotalValue     string
	AverageValue   string

	ChatTitle       string
	ChatDesc        string
	ChatPlaceholder string
	ChatSeed        string
	ChatFailure     string
	ChatComposing   string

	HistoryTitle string
	HistoryEmpty string
	HistoryTotal string

	DashTitle     string
	DashLoading   string
	DashError     string
	DashEmpty     string
	DashEmptyHint string
	DashTrend     string
	DashBrands    string
	DashRecent    string
	NoChartData   string

	PrefsSaved string
}

var translations = map[string]Translation{
	"vi": {
		Nav: map[Tab]string{
			TabValuation: "Định Giá",
			TabBatch:     "Xử lý Lô",
			TabChat:      "Trợ lý AI",
			TabAnalysis:  "Phân Tích",
			TabHistory:   "Lịch sử",
		},
		Title:    "AUTO PRESTIGE",
		Subtitle: "Định chuẩn giá trị xe hơi",

		Manufacturer: "Hãng xe", Model: "Dòng xe", Year: "Năm SX",
		Mileage: "Odo (Dặm)", Transmission: "Hộp số", FuelType: "Nhiên liệu",
		Tax: "Thuế (£)", MPG: "MPG", EngineSize: "Động cơ (L)",

		AnalyzeBtn:     "PHÂN TÍCH GIÁ TRỊ",
		Ready:          "Sẵn sàng khởi động",
		ReadyDesc:      "Nhập thông số xe để kích hoạt hệ thống định giá AI.",
		Analyzing:      "Đang tính toán...",
		AnalyzingDesc:  "Đang chạy mô hình định giá",
		Error:          "Đã xảy ra lỗi kết nối",
		ConnError:      "Không thể kết nối Backend. Vui lòng kiểm tra server.",
		EstimatedValue: "GIÁ TRỊ THỊ TRƯỜNG",
		Accuracy:       "Độ tin cậy 96.3%",
		Locked:         "KẾT QUẢ ĐÃ CHỐT",
		Reset:          "Định giá xe mới",
		LockedDesc:     "Màn hình đã bị khóa để bảo đảm tính toàn vẹn của kết quả.",

		BatchTitle:     "Định giá hàng loạt",
		BatchDesc:      "Tải lên file Excel (.xlsx) hoặc CSV để định giá nhiều xe cùng lúc.",
		UploadBtn:      "Chọn file dữ liệu",
		Processing:     "Đang xử lý...",
		BadFileType:    "Định dạng không hợp lệ. Hãy dùng .csv hoặc .xlsx",
		FileMissing:    "Không tìm thấy file",
		BatchConnError: "Lỗi kết nối.",
		TemplateSaved:  "Đã lưu file mẫu",
		ExportSaved:    "Đã xuất file",
		TotalCars:      "Tổng số xe",
		TotalValue:     "Tổng giá trị",
		AverageValue:   "Giá trung bình",

		ChatTitle:       "Trợ lý AI chuyên gia",
		ChatDesc:        "Hỏi đáp về thị trường, so sánh giá và tra cứu dữ liệu thực tế.",
		ChatPlaceholder: "Ví dụ: Giá xe Ford Fiesta 2019 hiện nay bao nhiêu?",
		ChatSeed:        "Chào bạn! Tôi là trợ lý AI của AutoPrestige.\nTôi có thể tra cứu giá xe thực tế và giải đáp mọi thắc mắc về định giá.\n\nVí dụ: 'Giá xe Mercedes C200 2020 trên thị trường là bao nhiêu?'",
		ChatFailure:     "Mất kết nối với máy chủ AI.",
		ChatComposing:   "Đang soạn trả lời...",

		HistoryTitle: "Lịch sử định giá",
		HistoryEmpty: "Chưa có dữ liệu lịch sử.",
		HistoryTotal: "Tổng cộng",

		DashTitle:     "Tổng quan thị trường",
		DashLoading:   "Đang phân tích dữ liệu thị trường...",
		DashError:     "Không thể tải dữ liệu thị trường.",
		DashEmpty:     "Chưa có dữ liệu phân tích.",
		DashEmptyHint: "Hãy thực hiện định giá vài chiếc xe để kích hoạt Dashboard.",
		DashTrend:     "Xu hướng giá",
		DashBrands:    "Top Hãng xe",
		DashRecent:    "Vừa định giá gần đây",
		NoChartData:   "Chưa đủ dữ liệu",

		PrefsSaved: "Đã lưu tùy chọn giao diện",
	},
	"en": {
		Nav: map[Tab]string{
			TabValuation: "Valuation",
			TabBatch:     "Batch",
			TabChat:      "AI Agent",
			TabAnalysis:  "Analysis",
			TabHistory:   "History",
		},
		Title:    "AUTO PRESTIGE",
		Subtitle: "The Standard of Car Valuation",

		Manufacturer: "Make", Model: "Model", Year: "Year",
		Mileage: "Mileage", Transmission: "Transmission", FuelType: "Fuel",
		Tax: "Tax (£)", MPG: "MPG", EngineSize: "Engine (L)",

		AnalyzeBtn:     "ANALYZE VALUE",
		Ready:          "Ready to Start",
		ReadyDesc:      "Enter vehicle specs to activate the valuation engine.",
		Analyzing:      "Calculating...",
		AnalyzingDesc:  "Running the valuation model",
		Error:          "Connection Error",
		ConnError:      "Cannot reach the backend. Please check the server.",
		EstimatedValue: "MARKET VALUE",
		Accuracy:       "Confidence 96.3%",
		Locked:         "RESULT LOCKED",
		Reset:          "New Valuation",
		LockedDesc:     "Screen locked to ensure result integrity.",

		BatchTitle:     "Batch Valuation",
		BatchDesc:      "Upload Excel (.xlsx) or CSV files to value multiple cars at once.",
		UploadBtn:      "Select Data File",
		Processing:     "Processing...",
		BadFileType:    "Unsupported format. Use .csv or .xlsx",
		FileMissing:    "File not found",
		BatchConnError: "Connection error.",
		TemplateSaved:  "Template saved",
		ExportSaved:    "Exported",
		TotalCars:      "Total cars",
		TotalValue:     "Total value",
		AverageValue:   "Average value",

		ChatTitle:       "Expert AI Consultant",
		ChatDesc:        "Ask about market trends, price comparison, and real-time data.",
		ChatPlaceholder: "Ex: What is the current market price for a 2019 Ford Fiesta?",
		ChatSeed:        "Hello! I am the AutoPrestige assistant.\nI can look up market prices and answer any valuation question.\n\nExample: 'What does a 2020 Mercedes C200 sell for?'",
		ChatFailure:     "Lost connection to the AI server.",
		ChatComposing:   "Composing a reply...",

		HistoryTitle: "Valuation history",
		HistoryEmpty: "No history yet.",
		HistoryTotal: "Total",

		DashTitle:     "Market overview",
		DashLoading:   "Analysing market data...",
		DashError:     "Could not load market data.",
		DashEmpty:     "No analysis data yet.",
		DashEmptyHint: "Value a few cars to activate the dashboard.",
		DashTrend:     "Price trend",
		DashBrands:    "Top brands",
		DashRecent:    "Recently valued",
		NoChartData:   "Not enough data",

		PrefsSaved: "Preferences saved",
	},
}

// Languages lists the supported UI languages; the first is the default.
var Languages = []string{"vi", "en"}

// Bundle returns the copy for lang, falling back to Vietnamese.
func Bundle(lang string) Translation {
	if t, ok := translations[lang]; ok {
		return t
	}
	return translations["vi"]
}

// NextLanguage toggles between the supported languages.
func NextLanguage(lang string) string {
	for i, l := range Languages {
		if l == lang {
			return Languages[(i+1)%len(Languages)]
		}
	}
	return Languages[0]
}
