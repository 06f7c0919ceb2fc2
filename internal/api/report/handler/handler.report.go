// Package reporthdl xử lý các request đọc view tổng hợp của dashboard.
// Mỗi request fold lại từ snapshot đơn hàng hiện tại của RollupWorker.
package reporthdl

import (
	"time"

	"github.com/gofiber/fiber/v3"

	basehdl "flora_commerce/internal/api/base/handler"
	reportdto "flora_commerce/internal/api/report/dto"
	reportmodels "flora_commerce/internal/api/report/models"
	reportsvc "flora_commerce/internal/api/report/service"
	"flora_commerce/internal/common"
	"flora_commerce/internal/utility"
	"flora_commerce/internal/worker"
)

// ReportHandler xử lý các request report
type ReportHandler struct{}

// NewReportHandler tạo instance mới của ReportHandler
func NewReportHandler() (*ReportHandler, error) {
	return &ReportHandler{}, nil
}

// HandleCustomerRollup trả về rollup khách hàng.
// Query sortBy: name (mặc định) | totalOrders | lastOrder.
func (h *ReportHandler) HandleCustomerRollup(c fiber.Ctx) error {
	sortBy := c.Query("sortBy", reportmodels.CustomerSortByName)
	switch sortBy {
	case reportmodels.CustomerSortByName, reportmodels.CustomerSortByTotalOrders, reportmodels.CustomerSortByLastOrder:
	default:
		return basehdl.HandleResponse(c, nil, common.NewError(
			common.ErrCodeValidationInput, "sortBy phải là name, totalOrders hoặc lastOrder", common.StatusBadRequest, nil))
	}

	orders := worker.GetRollupWorker().OrdersSnapshot()
	customers := reportsvc.FoldCustomers(orders, sortBy)
	return basehdl.HandleResponse(c, reportdto.CustomerRollupResponse{
		Customers: customers,
		SortBy:    sortBy,
	}, nil)
}

// HandleTopSellers trả về top sản phẩm bán chạy theo TotalSold giảm dần
func (h *ReportHandler) HandleTopSellers(c fiber.Ctx) error {
	orders := worker.GetRollupWorker().OrdersSnapshot()
	return basehdl.HandleResponse(c, reportdto.TopSellersResponse{
		TopSellers: reportsvc.FoldTopSellers(orders),
	}, nil)
}

// HandleHourlyHistogram trả về histogram doanh số 24 bucket của một ngày.
// Query date dạng "2006-01-02"; bỏ trống thì lấy hôm nay.
func (h *ReportHandler) HandleHourlyHistogram(c fiber.Ctx) error {
	dayStart := utility.StartOfDayUnixMilli(utility.NowUnixMilli())
	if dateStr := c.Query("date", ""); dateStr != "" {
		parsed, err := time.ParseInLocation("2006-01-02", dateStr, time.Local)
		if err != nil {
			return basehdl.HandleResponse(c, nil, common.NewError(
				common.ErrCodeValidationFormat, "date phải theo định dạng YYYY-MM-DD", common.StatusBadRequest, err))
		}
		dayStart = parsed.UnixMilli()
	}

	orders := worker.GetRollupWorker().OrdersSnapshot()
	return basehdl.HandleResponse(c, reportdto.HistogramResponse{
		Date:    time.UnixMilli(dayStart).Format("02/01/2006"),
		Buckets: reportsvc.FoldHistogram(orders, dayStart),
	}, nil)
}
