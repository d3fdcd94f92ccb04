package report

import "sort"

type GenerateReportRequest struct {
	StartDate string `json:"start_date" binding:"required,datetime=2006-01-02"`
	EndDate   string `json:"end_date" binding:"required,datetime=2006-01-02"`
}

type ReportFile struct {
	Name    string `json:"name"`
	Content string `json:"content"`
}

type ReportResponse struct {
	Period string       `json:"period,omitempty"`
	Files  []ReportFile `json:"files"`
}

func toReportResponse(period string, files map[string][]byte) ReportResponse {
	resp := ReportResponse{Period: period, Files: make([]ReportFile, 0, len(files))}
	for name, body := range files {
		resp.Files = append(resp.Files, ReportFile{Name: name, Content: string(body)})
	}
	sort.Slice(resp.Files, func(i, j int) bool { return resp.Files[i].Name < resp.Files[j].Name })
	return resp
}
