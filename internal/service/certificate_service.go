package service

import (
	"bytes"
	"context"
	"fmt"
	"time"

	"github.com/bernaba123/Clearance/internal/clearance"
	"github.com/bernaba123/Clearance/internal/metrics"
	"github.com/bernaba123/Clearance/internal/model"
	"github.com/bernaba123/Clearance/internal/repository"
	"github.com/jung-kurt/gofpdf"
)

// CertificateService 离校证书服务接口
type CertificateService interface {
	Render(ctx context.Context, studentID string) ([]byte, error)
}

// certificateService 离校证书服务实现
// 只有 completed 状态的申请可以签发;首次成功渲染后翻转 certificateIssued,
// 之后的重复请求重新渲染但不再改变任何其他状态
type certificateService struct {
	repo        repository.ClearanceRepository
	userRepo    repository.UserRepository
	auditLogSvc AuditLogService
}

// NewCertificateService 创建离校证书服务
func NewCertificateService(repo repository.ClearanceRepository, userRepo repository.UserRepository, auditLogSvc AuditLogService) CertificateService {
	return &certificateService{
		repo:        repo,
		userRepo:    userRepo,
		auditLogSvc: auditLogSvc,
	}
}

// Render 渲染离校证书 PDF
func (s *certificateService) Render(ctx context.Context, studentID string) ([]byte, error) {
	app, err := s.repo.FindLatestByStudent(ctx, studentID)
	if err != nil {
		return nil, err
	}
	if app == nil {
		return nil, clearance.ErrNotFound
	}
	if !app.CertificateEligible() {
		return nil, clearance.ErrNotCompleted
	}

	student, err := s.userRepo.FindByID(studentID)
	if err != nil {
		return nil, err
	}

	pdf, err := renderCertificatePDF(student, app)
	if err != nil {
		return nil, err
	}

	// 标志位只在首次成功渲染后落库,重复渲染不再产生写入
	if !app.CertificateIssued {
		if err := app.MarkCertificateIssued(); err != nil {
			return nil, err
		}
		if err := s.repo.Save(ctx, app); err != nil {
			return nil, err
		}
		metrics.RecordCertificateGenerated()

		if s.auditLogSvc != nil {
			_ = s.auditLogSvc.RecordAction(ctx, studentID, "issue_certificate", "clearance", app.ID, nil)
		}
	}

	return pdf, nil
}

// renderCertificatePDF 渲染证书文档
func renderCertificatePDF(student *model.UserModel, app *clearance.Application) ([]byte, error) {
	pdf := gofpdf.New("P", "mm", "A4", "")
	pdf.AddPage()

	pdf.SetFont("Helvetica", "B", 18)
	pdf.CellFormat(0, 12, "ADDIS ABABA SCIENCE AND TECHNOLOGY UNIVERSITY", "", 1, "C", false, 0, "")

	pdf.SetFont("Helvetica", "B", 14)
	pdf.CellFormat(0, 10, "STUDENT CLEARANCE CERTIFICATE", "", 1, "C", false, 0, "")
	pdf.Ln(10)

	pdf.SetFont("Helvetica", "", 12)
	pdf.CellFormat(0, 8, "This is to certify that:", "", 1, "L", false, 0, "")
	pdf.Ln(4)

	pdf.SetFont("Helvetica", "", 13)
	pdf.CellFormat(0, 9, fmt.Sprintf("Name: %s", student.FullName), "", 1, "L", false, 0, "")
	pdf.CellFormat(0, 9, fmt.Sprintf("Student ID: %s", student.StudentID), "", 1, "L", false, 0, "")
	pdf.CellFormat(0, 9, fmt.Sprintf("Department: %s", student.Department), "", 1, "L", false, 0, "")
	pdf.CellFormat(0, 9, fmt.Sprintf("Year Level: %s Year", ordinal(student.YearLevel)), "", 1, "L", false, 0, "")
	pdf.Ln(6)

	pdf.SetFont("Helvetica", "", 12)
	pdf.MultiCell(0, 7, "Has successfully completed all clearance requirements and is cleared from all university obligations.", "", "L", false)
	pdf.Ln(10)

	completedAt := time.Now()
	if app.CompletedAt != nil {
		completedAt = *app.CompletedAt
	}
	pdf.CellFormat(0, 8, fmt.Sprintf("Date: %s", completedAt.Format("January 2, 2006")), "", 1, "L", false, 0, "")
	pdf.Ln(16)

	pdf.CellFormat(0, 7, "Registrar Office", "", 1, "R", false, 0, "")
	pdf.CellFormat(0, 7, "_____________________", "", 1, "R", false, 0, "")
	pdf.CellFormat(0, 7, "Authorized Signature", "", 1, "R", false, 0, "")

	var buf bytes.Buffer
	if err := pdf.Output(&buf); err != nil {
		return nil, fmt.Errorf("failed to render certificate: %w", err)
	}
	return buf.Bytes(), nil
}

// ordinal 年级序数词
func ordinal(n int) string {
	switch n {
	case 1:
		return "1st"
	case 2:
		return "2nd"
	case 3:
		return "3rd"
	default:
		return fmt.Sprintf("%dth", n)
	}
}
