package core

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"
)

const payrollCobol = `       IDENTIFICATION DIVISION.
       PROGRAM-ID. PAYROLL.
      * Reads the master file and prints the register
       PROCEDURE DIVISION.
           OPEN INPUT PAYFILE
           OPEN OUTPUT RPTFILE
           READ PAYFILE
           WRITE RPTREC
           STOP RUN.
`

const payrollJCL = `//PAYJOB   JOB (ACCT),'PAYROLL'
//STEP01   EXEC PGM=PAYROLL
//PAYFILE  DD  DSN=PROD.PAY.MASTER,DISP=SHR
//RPTFILE  DD  SYSOUT=*
`

const migratedJCL = `//* THIS JOB IS ALREADY ON LINUX
//OLDJOB   JOB (ACCT)
//S1       EXEC PGM=OLDPGM
//IN       DD  DSN=OLD.DATA,DISP=SHR
`

// mainframeTree is a small source tree touching every walk rule.
var mainframeTree = map[string]string{
	"src/PAYROLL.cbl":   payrollCobol,
	"jobs/PAYJOB.jcl":   payrollJCL,
	"jobs/MIGRATED.jcl": migratedJCL,
	"copy/CUSTREC.cpy":  "       01 CUST-REC.\n           05 CUST-ID PIC X(10).\n",
	"data/cust.dat":     "0001 SMITH\n0002 JONES\n",
	"README.md":         "# Payroll batch\n",
	".git/HEAD":         "ref: refs/heads/main\n",
}

// writeTree creates files under root, making parent directories as needed.
func writeTree(t *testing.T, root string, files map[string]string) {
	t.Helper()
	for rel, content := range files {
		path := filepath.Join(root, filepath.FromSlash(rel))
		require.NoError(t, os.MkdirAll(filepath.Dir(path), 0o755))
		require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
	}
}

// newMainframeTree returns a temp root populated with mainframeTree.
func newMainframeTree(t *testing.T) string {
	t.Helper()
	root := t.TempDir()
	writeTree(t, root, mainframeTree)
	return root
}
