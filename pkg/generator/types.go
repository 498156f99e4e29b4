package generator

// DefaultModel は設定でモデルが指定されていないときに使うモデルです。
const DefaultModel = "gemini-1.5-flash"
