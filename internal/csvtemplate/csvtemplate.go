// Package csvtemplate holds the consumables import template.
package csvtemplate

import (
	"bytes"
	"encoding/csv"
)

// FileName is the name the template is saved under.
const FileName = "consumables_template.csv"

// BOM prefixes the file so spreadsheet tools detect UTF-8.
const BOM = "\ufeff"

// Header is the import column order.
var Header = []string{
	"コード", "発注コード", "品名", "カテゴリ", "単位", "在庫数", "安全在庫",
	"単価", "発注単位", "仕入先", "保管場所", "備考", "注文状態", "欠品状態",
}

// Samples are the example rows shipped with the template.
var Samples = [][]string{
	{"TIP-12-EG-1", "S01", "EGチップ Sサイズ", "実験用品", "個", "10", "5", "1200", "1", "LabMart", "試薬A", "テスト用データ", "未発注", "在庫あり"},
	{"NOZUR-20-DB-1", "S01", "ノズル 20mm", "消耗品A", "本", "4", "8", "850", "1", "FactoryDirect", "備品1", "安全在庫割れ対策", "様子見", "要注意"},
}

// Bytes renders the template: BOM, header, then the sample rows.
func Bytes() []byte {
	var buf bytes.Buffer
	buf.WriteString(BOM)

	w := csv.NewWriter(&buf)
	w.Write(Header)
	w.WriteAll(Samples) // flushes
	return buf.Bytes()
}
