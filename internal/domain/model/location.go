package model

// Location 門市據點, 由靜態JSON載入
// 距離排序屬於前端地圖功能, 不在這裡處理
type Location struct {
	Name     string  `json:"name"`
	Info     string  `json:"description"`
	Schedule string  `json:"schedule"`
	Image    string  `json:"image"`
	Lat      float64 `json:"latitude"`
	Lng      float64 `json:"longitude"`
}

func (l Location) ID() string {
	return l.Name
}
