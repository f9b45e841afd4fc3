package server

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
	compliancedomain "github.com/smallbiznis/myinvois/internal/compliance/domain"
	industrydomain "github.com/smallbiznis/myinvois/internal/industry/domain"
	obsmiddleware "github.com/smallbiznis/myinvois/internal/observability/logger"
	"github.com/smallbiznis/myinvois/pkg/pagination"
)

type validateTINRequest struct {
	TIN string `json:"tin"`
}

func (s *Server) ValidateTIN(c *gin.Context) {
	var req validateTINRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		AbortWithError(c, invalidRequestError())
		return
	}

	result := s.complianceSvc.ValidateTIN(c.Request.Context(), req.TIN)
	c.JSON(http.StatusOK, gin.H{"data": result})
}

type listIndustriesQuery struct {
	compliancedomain.IndustryFilter
	pagination.Pagination
}

func (s *Server) ListIndustries(c *gin.Context) {
	var query listIndustriesQuery
	if err := c.ShouldBindQuery(&query); err != nil {
		AbortWithError(c, invalidRequestError())
		return
	}

	items := s.complianceSvc.ListIndustries(c.Request.Context(), query.IndustryFilter)
	page, pageInfo, err := pagination.Page(items, query.Pagination, func(item industrydomain.IndustryCode) string {
		return item.Code
	})
	if err != nil {
		AbortWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"data": page, "page_info": pageInfo})
}

func (s *Server) GetIndustry(c *gin.Context) {
	code := strings.TrimSpace(c.Param("code"))
	if code == "" {
		AbortWithError(c, newValidationError("industry_code", "invalid_industry_code", "invalid industry code"))
		return
	}

	entry, err := s.complianceSvc.LookupIndustry(c.Request.Context(), code)
	if err != nil {
		AbortWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"data": entry})
}

func (s *Server) CheckConsolidation(c *gin.Context) {
	var req compliancedomain.ConsolidationRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		AbortWithError(c, invalidRequestError())
		return
	}

	resp, err := s.complianceSvc.CheckConsolidation(c.Request.Context(), req)
	if err != nil {
		AbortWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"data": resp})
}

func (s *Server) EvaluateInvoice(c *gin.Context) {
	var req compliancedomain.EvaluateRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		AbortWithError(c, invalidRequestError())
		return
	}

	report, err := s.complianceSvc.Evaluate(c.Request.Context(), req)
	if err != nil {
		AbortWithError(c, err)
		return
	}

	c.Set(obsmiddleware.ComplianceScoreKey, report.Score)
	c.JSON(http.StatusOK, gin.H{"data": report})
}
